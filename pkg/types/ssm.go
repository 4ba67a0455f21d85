package types

import "time"

// ManagedInstance is an instance registered with SSM
type ManagedInstance struct {
	ID           string
	ComputerName string
	PingStatus   string
	Platform     string
	AgentVersion string
	LastPing     *time.Time
}

// CommandInvocation is a run of an SSM command on one instance
type CommandInvocation struct {
	CommandID    string
	InstanceID   string
	DocumentName string
	Status       string
	Requested    *time.Time
}

// CommandOutput is the captured output of a command invocation
type CommandOutput struct {
	Status string
	Stdout string
	Stderr string
}
