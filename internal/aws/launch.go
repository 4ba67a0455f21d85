package aws

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sort"

	"dario.cat/mergo"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/google/uuid"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// LaunchInput contains parameters for launching an instance
type LaunchInput struct {
	Name                  string
	ImageID               string
	InstanceType          string
	KeyName               string
	VolumeSize            int
	IAMInstanceProfileARN string
	SubnetID              string
	SecurityGroups        []string // names or IDs
	AssociatePublicIP     bool
	UserData              []byte
	Tags                  map[string]string
}

// LaunchTags builds the tags for a new instance. Name and Owner always win;
// additional tags only fill keys that are not already set.
func LaunchTags(name, owner string, additional map[string]string) (map[string]string, error) {
	tags := map[string]string{"Name": name}
	if owner != "" {
		tags["Owner"] = owner
	}

	if len(additional) > 0 {
		if err := mergo.Merge(&tags, additional); err != nil {
			return nil, fmt.Errorf("failed to merge tags: %w", err)
		}
	}

	return tags, nil
}

// Launch runs a single instance and returns it as reported by RunInstances
func (c *Client) Launch(ctx context.Context, input *LaunchInput) ([]pkgtypes.Instance, error) {
	params := &ec2.RunInstancesInput{
		ImageId:      aws.String(input.ImageID),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		InstanceType: ec2types.InstanceType(input.InstanceType),
		ClientToken:  aws.String(uuid.NewString()),
		TagSpecifications: []ec2types.TagSpecification{
			{ResourceType: ec2types.ResourceTypeInstance, Tags: toTags(input.Tags)},
			{ResourceType: ec2types.ResourceTypeVolume, Tags: toTags(input.Tags)},
		},
	}

	if input.KeyName != "" {
		params.KeyName = aws.String(input.KeyName)
	}

	if input.IAMInstanceProfileARN != "" {
		params.IamInstanceProfile = &ec2types.IamInstanceProfileSpecification{
			Arn: aws.String(input.IAMInstanceProfileARN),
		}
	}

	if len(input.UserData) > 0 {
		params.UserData = aws.String(base64.StdEncoding.EncodeToString(input.UserData))
	}

	if input.SubnetID != "" {
		subnet, err := c.DescribeSubnet(ctx, input.SubnetID)
		if err != nil {
			return nil, err
		}

		groups, err := c.SecurityGroupIDs(ctx, subnet.VPCID, input.SecurityGroups)
		if err != nil {
			return nil, err
		}

		params.NetworkInterfaces = []ec2types.InstanceNetworkInterfaceSpecification{
			{
				DeviceIndex:              aws.Int32(0),
				SubnetId:                 aws.String(subnet.ID),
				Groups:                   groups,
				AssociatePublicIpAddress: aws.Bool(input.AssociatePublicIP),
			},
		}
	}

	if input.VolumeSize > 0 {
		image, err := c.DescribeImage(ctx, input.ImageID)
		if err != nil {
			return nil, err
		}

		if image != nil && image.RootDeviceName != "" {
			params.BlockDeviceMappings = []ec2types.BlockDeviceMapping{
				{
					DeviceName: aws.String(image.RootDeviceName),
					Ebs: &ec2types.EbsBlockDevice{
						VolumeSize:          aws.Int32(int32(input.VolumeSize)),
						DeleteOnTermination: aws.Bool(true),
					},
				},
			}
		}
	}

	slog.Debug("launching instance", "name", input.Name, "image", input.ImageID, "type", input.InstanceType)

	output, err := c.EC2.RunInstances(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to run instances: %w", err)
	}

	instances := make([]pkgtypes.Instance, 0, len(output.Instances))
	for _, inst := range output.Instances {
		instances = append(instances, toInstance(inst))
	}

	return instances, nil
}

// toTags converts a tag map to EC2 tags, ordered by key
func toTags(tags map[string]string) []ec2types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]ec2types.Tag, 0, len(keys))
	for _, k := range keys {
		result = append(result, ec2types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return result
}
