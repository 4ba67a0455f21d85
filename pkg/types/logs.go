package types

import "time"

// ConsoleOutput is the system log captured from an instance's console
type ConsoleOutput struct {
	InstanceID string    `json:"instance_id"`
	Timestamp  time.Time `json:"timestamp"` // when the output was last updated
	Output     string    `json:"output"`    // decoded text
}
