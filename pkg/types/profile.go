package types

// Profile summarises a profile defined in the aec config file
type Profile struct {
	Name    string
	Region  string // from the profile's region key if set
	Default bool   // named by default_profile
}

// AWSProfile is a profile from the AWS shared config and credentials files
type AWSProfile struct {
	Name   string
	Region string
	Source string // sso, assume-role, static or empty when credentials come from elsewhere
}
