package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// DescribeSubnet returns the subnet with the given ID
func (c *Client) DescribeSubnet(ctx context.Context, subnetID string) (*pkgtypes.Subnet, error) {
	output, err := c.EC2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		SubnetIds: []string{subnetID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnet %s: %w", subnetID, err)
	}

	if len(output.Subnets) == 0 {
		return nil, fmt.Errorf("subnet %s not found", subnetID)
	}

	subnet := toSubnet(output.Subnets[0])
	return &subnet, nil
}

// SecurityGroupIDs resolves security group names or IDs within a VPC. Values
// starting with "sg-" are taken to be IDs already.
func (c *Client) SecurityGroupIDs(ctx context.Context, vpcID string, groups []string) ([]string, error) {
	var ids, names []string
	for _, g := range groups {
		if strings.HasPrefix(g, "sg-") {
			ids = append(ids, g)
		} else {
			names = append(names, g)
		}
	}

	if len(names) == 0 {
		return ids, nil
	}

	filters := []ec2types.Filter{
		{
			Name:   aws.String("group-name"),
			Values: names,
		},
	}

	if vpcID != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("vpc-id"),
			Values: []string{vpcID},
		})
	}

	output, err := c.EC2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: filters,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe security groups: %w", err)
	}

	found := make(map[string]string, len(output.SecurityGroups))
	for _, sg := range output.SecurityGroups {
		group := toSecurityGroup(sg)
		found[group.Name] = group.ID
	}

	for _, name := range names {
		id, ok := found[name]
		if !ok {
			return nil, fmt.Errorf("security group %s not found in vpc %s", name, vpcID)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// toSubnet converts an EC2 Subnet to our Subnet type
func toSubnet(s ec2types.Subnet) pkgtypes.Subnet {
	subnet := pkgtypes.Subnet{
		ID:    deref(s.SubnetId),
		VPCID: deref(s.VpcId),
		CIDR:  deref(s.CidrBlock),
		AZ:    deref(s.AvailabilityZone),
	}

	// Extract Name tag
	for _, tag := range s.Tags {
		if deref(tag.Key) == "Name" {
			subnet.Name = deref(tag.Value)
			break
		}
	}

	return subnet
}

func toSecurityGroup(sg ec2types.SecurityGroup) pkgtypes.SecurityGroup {
	return pkgtypes.SecurityGroup{
		ID:    deref(sg.GroupId),
		Name:  deref(sg.GroupName),
		VPCID: deref(sg.VpcId),
	}
}

// derefBool safely dereferences a bool pointer
func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
