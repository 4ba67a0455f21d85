package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// ListManagedInstances returns the instances registered with SSM
func (c *Client) ListManagedInstances(ctx context.Context) ([]pkgtypes.ManagedInstance, error) {
	var instances []pkgtypes.ManagedInstance

	paginator := ssm.NewDescribeInstanceInformationPaginator(c.SSM, &ssm.DescribeInstanceInformationInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instance information: %w", err)
		}

		for _, info := range page.InstanceInformationList {
			instances = append(instances, toManagedInstance(info))
		}
	}

	return instances, nil
}

// ListCommandInvocations returns recent command invocations, optionally
// restricted to one instance
func (c *Client) ListCommandInvocations(ctx context.Context, instanceID string) ([]pkgtypes.CommandInvocation, error) {
	input := &ssm.ListCommandInvocationsInput{
		MaxResults: aws.Int32(50),
	}

	if instanceID != "" {
		input.InstanceId = aws.String(instanceID)
	}

	output, err := c.SSM.ListCommandInvocations(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list command invocations: %w", err)
	}

	invocations := make([]pkgtypes.CommandInvocation, 0, len(output.CommandInvocations))
	for _, inv := range output.CommandInvocations {
		invocations = append(invocations, pkgtypes.CommandInvocation{
			CommandID:    deref(inv.CommandId),
			InstanceID:   deref(inv.InstanceId),
			DocumentName: deref(inv.DocumentName),
			Status:       string(inv.Status),
			Requested:    inv.RequestedDateTime,
		})
	}

	return invocations, nil
}

// CommandOutput returns the output of a command on one instance
func (c *Client) CommandOutput(ctx context.Context, commandID, instanceID string) (*pkgtypes.CommandOutput, error) {
	output, err := c.SSM.GetCommandInvocation(ctx, &ssm.GetCommandInvocationInput{
		CommandId:  aws.String(commandID),
		InstanceId: aws.String(instanceID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get command invocation: %w", err)
	}

	return &pkgtypes.CommandOutput{
		Status: string(output.Status),
		Stdout: deref(output.StandardOutputContent),
		Stderr: deref(output.StandardErrorContent),
	}, nil
}

func toManagedInstance(info ssmtypes.InstanceInformation) pkgtypes.ManagedInstance {
	return pkgtypes.ManagedInstance{
		ID:           deref(info.InstanceId),
		ComputerName: deref(info.ComputerName),
		PingStatus:   string(info.PingStatus),
		Platform:     deref(info.PlatformName),
		AgentVersion: deref(info.AgentVersion),
		LastPing:     info.LastPingDateTime,
	}
}
