package aws

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// liveStates are the instance states listed unless terminated instances are requested
var liveStates = []string{"pending", "running", "stopping", "stopped", "shutting-down"}

// ListInstancesInput contains parameters for listing EC2 instances
type ListInstancesInput struct {
	Name              string // exact Name tag
	NameMatch         string // substring of the Name tag
	InstanceIDs       []string
	IncludeTerminated bool
}

// ListInstances returns instances matching input, sorted by name then launch time
func (c *Client) ListInstances(ctx context.Context, input *ListInstancesInput) ([]pkgtypes.Instance, error) {
	if input == nil {
		input = &ListInstancesInput{}
	}

	var filters []ec2types.Filter

	if !input.IncludeTerminated {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("instance-state-name"),
			Values: liveStates,
		})
	}

	if input.Name != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:Name"),
			Values: []string{input.Name},
		})
	} else if input.NameMatch != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:Name"),
			Values: []string{"*" + input.NameMatch + "*"},
		})
	}

	describeInput := &ec2.DescribeInstancesInput{
		Filters: filters,
	}

	if len(input.InstanceIDs) > 0 {
		describeInput.InstanceIds = input.InstanceIDs
	}

	var instances []pkgtypes.Instance

	paginator := ec2.NewDescribeInstancesPaginator(c.EC2, describeInput)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				instances = append(instances, toInstance(inst))
			}
		}
	}

	sort.SliceStable(instances, func(i, j int) bool {
		if instances[i].Name != instances[j].Name {
			return instances[i].Name < instances[j].Name
		}
		return instances[i].LaunchTime.Before(instances[j].LaunchTime)
	})

	return instances, nil
}

// ErrNameRequired is returned when an instance operation is given no Name
// tag. Without it the lookup would match every live instance.
var ErrNameRequired = errors.New("instance name is required")

// instanceIDs returns the IDs of the instances with the given Name tag
func (c *Client) instanceIDs(ctx context.Context, name string) ([]string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	instances, err := c.ListInstances(ctx, &ListInstancesInput{Name: name})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(instances))
	for _, inst := range instances {
		ids = append(ids, inst.ID)
	}

	return ids, nil
}

// StartInstances starts the instances named name
func (c *Client) StartInstances(ctx context.Context, name string) ([]pkgtypes.StateChange, error) {
	ids, err := c.instanceIDs(ctx, name)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	output, err := c.EC2.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to start instances: %w", err)
	}

	return toStateChanges(output.StartingInstances), nil
}

// StopInstances stops the instances named name
func (c *Client) StopInstances(ctx context.Context, name string) ([]pkgtypes.StateChange, error) {
	ids, err := c.instanceIDs(ctx, name)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	output, err := c.EC2.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to stop instances: %w", err)
	}

	return toStateChanges(output.StoppingInstances), nil
}

// TerminateInstances terminates the instances named name
func (c *Client) TerminateInstances(ctx context.Context, name string) ([]pkgtypes.StateChange, error) {
	ids, err := c.instanceIDs(ctx, name)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	output, err := c.EC2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to terminate instances: %w", err)
	}

	return toStateChanges(output.TerminatingInstances), nil
}

// ModifyInstanceType changes the type of the instances named name. EC2 only
// accepts this for stopped instances.
func (c *Client) ModifyInstanceType(ctx context.Context, name, instanceType string) ([]pkgtypes.Instance, error) {
	ids, err := c.instanceIDs(ctx, name)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	for _, id := range ids {
		_, err := c.EC2.ModifyInstanceAttribute(ctx, &ec2.ModifyInstanceAttributeInput{
			InstanceId:   aws.String(id),
			InstanceType: &ec2types.AttributeValue{Value: aws.String(instanceType)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to modify instance %s: %w", id, err)
		}
	}

	return c.ListInstances(ctx, &ListInstancesInput{InstanceIDs: ids})
}

// ConsoleOutput returns the console output of the first instance named name,
// or nil if there is no such instance
func (c *Client) ConsoleOutput(ctx context.Context, name string) (*pkgtypes.ConsoleOutput, error) {
	ids, err := c.instanceIDs(ctx, name)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	output, err := c.EC2.GetConsoleOutput(ctx, &ec2.GetConsoleOutputInput{
		InstanceId: aws.String(ids[0]),
		Latest:     aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get console output: %w", err)
	}

	out := &pkgtypes.ConsoleOutput{
		InstanceID: ids[0],
		Timestamp:  derefTime(output.Timestamp),
	}

	if output.Output != nil {
		text, err := base64.StdEncoding.DecodeString(*output.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to decode console output: %w", err)
		}
		out.Output = string(text)
	}

	return out, nil
}

// toInstance converts an EC2 Instance to our Instance type
func toInstance(i ec2types.Instance) pkgtypes.Instance {
	inst := pkgtypes.Instance{
		ID:        deref(i.InstanceId),
		Type:      string(i.InstanceType),
		DNSName:   deref(i.PublicDnsName),
		PrivateIP: deref(i.PrivateIpAddress),
		PublicIP:  deref(i.PublicIpAddress),
		ImageID:   deref(i.ImageId),
		Tags:      make(map[string]string, len(i.Tags)),
	}

	if i.State != nil {
		inst.State = string(i.State.Name)
	}

	// Instances without a public address only have a private name
	if inst.DNSName == "" {
		inst.DNSName = deref(i.PrivateDnsName)
	}

	if i.Placement != nil {
		inst.AZ = deref(i.Placement.AvailabilityZone)
	}

	inst.LaunchTime = derefTime(i.LaunchTime)

	for _, tag := range i.Tags {
		key := deref(tag.Key)
		value := deref(tag.Value)

		inst.Tags[key] = value
		if key == "Name" {
			inst.Name = value
		}
	}

	return inst
}

func toStateChanges(changes []ec2types.InstanceStateChange) []pkgtypes.StateChange {
	result := make([]pkgtypes.StateChange, 0, len(changes))
	for _, ch := range changes {
		sc := pkgtypes.StateChange{InstanceID: deref(ch.InstanceId)}
		if ch.PreviousState != nil {
			sc.PreviousState = string(ch.PreviousState.Name)
		}
		if ch.CurrentState != nil {
			sc.CurrentState = string(ch.CurrentState.Name)
		}
		result = append(result, sc)
	}
	return result
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// derefTime safely dereferences a time pointer
func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
