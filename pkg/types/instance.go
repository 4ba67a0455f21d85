package types

import "time"

// Instance represents an EC2 instance
type Instance struct {
	ID         string
	Name       string
	State      string
	Type       string
	DNSName    string // public DNS name, or private when there is none
	PrivateIP  string
	PublicIP   string
	ImageID    string
	AZ         string
	LaunchTime time.Time
	Tags       map[string]string
}

// IsTerminated returns true if the instance is gone or going
func (i *Instance) IsTerminated() bool {
	return i.State == "terminated" || i.State == "shutting-down"
}

// StateChange is the result of starting, stopping or terminating an instance
type StateChange struct {
	InstanceID    string
	PreviousState string
	CurrentState  string
}
