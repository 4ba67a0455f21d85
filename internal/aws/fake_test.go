package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/vietdv277/aec/internal/config"
)

// fakeEC2 answers the EC2 calls made by the commands. Calls it does not
// implement panic through the nil embedded interface.
type fakeEC2 struct {
	ec2API

	instances      *ec2.DescribeInstancesOutput
	images         *ec2.DescribeImagesOutput
	subnets        *ec2.DescribeSubnetsOutput
	securityGroups *ec2.DescribeSecurityGroupsOutput
	consoleOutput  *ec2.GetConsoleOutputOutput
	keyPair        *ec2.CreateKeyPairOutput
	keyPairErr     error
	runOutput      *ec2.RunInstancesOutput

	describeInputs []*ec2.DescribeInstancesInput
	imageInputs    []*ec2.DescribeImagesInput
	sgInputs       []*ec2.DescribeSecurityGroupsInput
	runInput       *ec2.RunInstancesInput
	stopInput      *ec2.StopInstancesInput
	startInput     *ec2.StartInstancesInput
	terminateInput *ec2.TerminateInstancesInput
	modifyInputs   []*ec2.ModifyInstanceAttributeInput
	consoleInput   *ec2.GetConsoleOutputInput
	deregistered   []string
	deletedSnaps   []string
	shareInput     *ec2.ModifyImageAttributeInput
	keyPairCalls   int
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describeInputs = append(f.describeInputs, in)
	if f.instances == nil {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	return f.instances, nil
}

func (f *fakeEC2) RunInstances(ctx context.Context, in *ec2.RunInstancesInput, _ ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	f.runInput = in
	return f.runOutput, nil
}

func (f *fakeEC2) StartInstances(ctx context.Context, in *ec2.StartInstancesInput, _ ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	f.startInput = in
	return &ec2.StartInstancesOutput{StartingInstances: stateChanges(in.InstanceIds, "stopped", "pending")}, nil
}

func (f *fakeEC2) StopInstances(ctx context.Context, in *ec2.StopInstancesInput, _ ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	f.stopInput = in
	return &ec2.StopInstancesOutput{StoppingInstances: stateChanges(in.InstanceIds, "running", "stopping")}, nil
}

func (f *fakeEC2) TerminateInstances(ctx context.Context, in *ec2.TerminateInstancesInput, _ ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error) {
	f.terminateInput = in
	return &ec2.TerminateInstancesOutput{TerminatingInstances: stateChanges(in.InstanceIds, "running", "shutting-down")}, nil
}

func (f *fakeEC2) ModifyInstanceAttribute(ctx context.Context, in *ec2.ModifyInstanceAttributeInput, _ ...func(*ec2.Options)) (*ec2.ModifyInstanceAttributeOutput, error) {
	f.modifyInputs = append(f.modifyInputs, in)
	return &ec2.ModifyInstanceAttributeOutput{}, nil
}

func (f *fakeEC2) GetConsoleOutput(ctx context.Context, in *ec2.GetConsoleOutputInput, _ ...func(*ec2.Options)) (*ec2.GetConsoleOutputOutput, error) {
	f.consoleInput = in
	return f.consoleOutput, nil
}

func (f *fakeEC2) DescribeImages(ctx context.Context, in *ec2.DescribeImagesInput, _ ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
	f.imageInputs = append(f.imageInputs, in)
	if f.images == nil {
		return &ec2.DescribeImagesOutput{}, nil
	}
	return f.images, nil
}

func (f *fakeEC2) DeregisterImage(ctx context.Context, in *ec2.DeregisterImageInput, _ ...func(*ec2.Options)) (*ec2.DeregisterImageOutput, error) {
	f.deregistered = append(f.deregistered, *in.ImageId)
	return &ec2.DeregisterImageOutput{}, nil
}

func (f *fakeEC2) DeleteSnapshot(ctx context.Context, in *ec2.DeleteSnapshotInput, _ ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error) {
	f.deletedSnaps = append(f.deletedSnaps, *in.SnapshotId)
	return &ec2.DeleteSnapshotOutput{}, nil
}

func (f *fakeEC2) ModifyImageAttribute(ctx context.Context, in *ec2.ModifyImageAttributeInput, _ ...func(*ec2.Options)) (*ec2.ModifyImageAttributeOutput, error) {
	f.shareInput = in
	return &ec2.ModifyImageAttributeOutput{}, nil
}

func (f *fakeEC2) CreateKeyPair(ctx context.Context, in *ec2.CreateKeyPairInput, _ ...func(*ec2.Options)) (*ec2.CreateKeyPairOutput, error) {
	f.keyPairCalls++
	return f.keyPair, f.keyPairErr
}

func (f *fakeEC2) DescribeSubnets(ctx context.Context, in *ec2.DescribeSubnetsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	return f.subnets, nil
}

func (f *fakeEC2) DescribeSecurityGroups(ctx context.Context, in *ec2.DescribeSecurityGroupsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	f.sgInputs = append(f.sgInputs, in)
	return f.securityGroups, nil
}

type fakeSQS struct {
	sqsAPI

	batches  []*sqs.ReceiveMessageOutput
	received int
	deleted  []*sqs.DeleteMessageBatchInput
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if f.received >= len(f.batches) {
		return &sqs.ReceiveMessageOutput{}, nil
	}
	out := f.batches[f.received]
	f.received++
	return out, nil
}

func (f *fakeSQS) DeleteMessageBatch(ctx context.Context, in *sqs.DeleteMessageBatchInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageBatchOutput, error) {
	f.deleted = append(f.deleted, in)
	return &sqs.DeleteMessageBatchOutput{}, nil
}

type fakeSSM struct {
	ssmAPI

	information *ssm.DescribeInstanceInformationOutput
	invocations map[string]*ssm.ListCommandInvocationsOutput // by instance ID, "" for all
	invocation  *ssm.GetCommandInvocationOutput
}

func (f *fakeSSM) DescribeInstanceInformation(ctx context.Context, in *ssm.DescribeInstanceInformationInput, _ ...func(*ssm.Options)) (*ssm.DescribeInstanceInformationOutput, error) {
	return f.information, nil
}

func (f *fakeSSM) ListCommandInvocations(ctx context.Context, in *ssm.ListCommandInvocationsInput, _ ...func(*ssm.Options)) (*ssm.ListCommandInvocationsOutput, error) {
	key := ""
	if in.InstanceId != nil {
		key = *in.InstanceId
	}
	if out, ok := f.invocations[key]; ok {
		return out, nil
	}
	return &ssm.ListCommandInvocationsOutput{}, nil
}

func (f *fakeSSM) GetCommandInvocation(ctx context.Context, in *ssm.GetCommandInvocationInput, _ ...func(*ssm.Options)) (*ssm.GetCommandInvocationOutput, error) {
	return f.invocation, nil
}

type fakeSTS struct {
	stsAPI

	identity *sts.GetCallerIdentityOutput
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.identity, nil
}

// useClient makes commands talk to c for the rest of the test and records
// the settings they connected with.
func useClient(t *testing.T, c *Client) *[]*config.Settings {
	t.Helper()
	var seen []*config.Settings
	prev := clientFor
	clientFor = func(ctx context.Context, s *config.Settings) (*Client, error) {
		seen = append(seen, s)
		return c, nil
	}
	t.Cleanup(func() { clientFor = prev })
	return &seen
}
