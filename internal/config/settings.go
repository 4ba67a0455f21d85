package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Settings defaults
const (
	DefaultInstanceType = "t3.small"
	DefaultVolumeSize   = 20
)

// Settings is the typed view of a profile used by the AWS commands.
type Settings struct {
	Region                  string            `mapstructure:"region"                     validate:"required"`
	AWSProfile              string            `mapstructure:"aws_profile"`
	Owner                   string            `mapstructure:"owner"`
	KeyName                 string            `mapstructure:"key_name"`
	InstanceType            string            `mapstructure:"instance_type"`
	VolumeSize              int               `mapstructure:"volume_size"                validate:"min=1,max=16384"`
	IAMInstanceProfileARN   string            `mapstructure:"iam_instance_profile_arn"`
	AdditionalTags          map[string]string `mapstructure:"additional_tags"`
	VPC                     *VPCSettings      `mapstructure:"vpc"`
	DescribeImagesOwners    []string          `mapstructure:"describe_images_owners"`
	DescribeImagesNameMatch string            `mapstructure:"describe_images_name_match"`
}

// VPCSettings controls where instances are launched.
type VPCSettings struct {
	Name                     string   `mapstructure:"name"`
	Subnet                   string   `mapstructure:"subnet"                      validate:"required"`
	SecurityGroups           []string `mapstructure:"security_group"`
	AssociatePublicIPAddress *bool    `mapstructure:"associate_public_ip_address"`
}

// PublicIP reports whether launched instances get a public address.
func (v *VPCSettings) PublicIP() bool {
	if v == nil || v.AssociatePublicIPAddress == nil {
		return true
	}
	return *v.AssociatePublicIPAddress
}

var validate = validator.New()

// Decode converts a profile into Settings, fills defaults and validates the
// result. security_group may be a single name or a list.
func Decode(p Profile) (*Settings, error) {
	s := &Settings{
		InstanceType: DefaultInstanceType,
		VolumeSize:   DefaultVolumeSize,
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create settings decoder: %w", err)
	}

	if err := dec.Decode(map[string]any(p)); err != nil {
		return nil, fmt.Errorf("invalid profile settings: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid profile settings: %w", err)
	}

	return s, nil
}
