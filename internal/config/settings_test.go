package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	profile := Profile{
		"region":                   "ap-southeast-2",
		"key_name":                 "test_key",
		"iam_instance_profile_arn": "test_profile",
		"volume_size":              int64(100),
		"additional_tags": map[string]any{
			"Owner":   "alice@testlab.io",
			"Project": "test project a",
		},
		"vpc": map[string]any{
			"name":                        "test vpc",
			"subnet":                      "subnet-123",
			"security_group":              "default",
			"associate_public_ip_address": false,
		},
		"unrelated": []any{"ignored"},
	}

	s, err := Decode(profile)

	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", s.Region)
	assert.Equal(t, "test_key", s.KeyName)
	assert.Equal(t, "test_profile", s.IAMInstanceProfileARN)
	assert.Equal(t, 100, s.VolumeSize)
	assert.Equal(t, DefaultInstanceType, s.InstanceType)
	assert.Equal(t, map[string]string{"Owner": "alice@testlab.io", "Project": "test project a"}, s.AdditionalTags)
	require.NotNil(t, s.VPC)
	assert.Equal(t, "subnet-123", s.VPC.Subnet)
	assert.Equal(t, []string{"default"}, s.VPC.SecurityGroups)
	assert.False(t, s.VPC.PublicIP())
}

func TestDecodeSecurityGroupList(t *testing.T) {
	s, err := Decode(Profile{
		"region": "us-east-1",
		"vpc": map[string]any{
			"subnet":         "subnet-1",
			"security_group": []any{"one", "two"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, s.VPC.SecurityGroups)
	assert.True(t, s.VPC.PublicIP())
}

func TestDecodeDefaults(t *testing.T) {
	s, err := Decode(Profile{"region": "us-east-1"})

	require.NoError(t, err)
	assert.Equal(t, DefaultInstanceType, s.InstanceType)
	assert.Equal(t, DefaultVolumeSize, s.VolumeSize)
	assert.Nil(t, s.VPC)
	assert.True(t, s.VPC.PublicIP())
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
	}{
		{name: "missing region", profile: Profile{"key_name": "k"}},
		{name: "vpc without subnet", profile: Profile{"region": "us-east-1", "vpc": map[string]any{"name": "v"}}},
		{name: "volume too small", profile: Profile{"region": "us-east-1", "volume_size": 0}},
		{name: "wrong type", profile: Profile{"region": "us-east-1", "vpc": "not-a-table"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.profile)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid profile settings")
		})
	}
}
