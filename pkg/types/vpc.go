package types

// Subnet represents an AWS VPC Subnet
type Subnet struct {
	ID    string
	Name  string
	VPCID string
	CIDR  string
	AZ    string
}

// SecurityGroup represents an AWS security group
type SecurityGroup struct {
	ID    string
	Name  string
	VPCID string
}
