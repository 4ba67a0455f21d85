package types

import "time"

// Image represents an AMI
type Image struct {
	ID             string
	Name           string
	State          string
	OwnerID        string
	RootDeviceName string
	SnapshotID     string // snapshot backing the root volume, if EBS backed
	CreationDate   time.Time
	Public         bool
}

// KeyPair is a newly created EC2 key pair
type KeyPair struct {
	Name        string
	ID          string
	Fingerprint string
	Material    string // private key, PEM encoded
}
