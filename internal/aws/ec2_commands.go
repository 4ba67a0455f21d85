package aws

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
)

// LaunchArgs are the arguments of ec2 launch. Zero values fall back to the
// profile settings.
type LaunchArgs struct {
	Name         string
	AMI          string
	InstanceType string
	KeyName      string
	VolumeSize   int
	UserDataFile string
}

// Launch launches a tagged instance into the profile's subnet.
func Launch(ctx context.Context, profile config.Profile, args LaunchArgs) (render.Result, error) {
	if args.Name == "" || args.AMI == "" {
		return render.Result{}, errors.New("name and ami are required")
	}

	settings, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	tags, err := LaunchTags(args.Name, settings.Owner, settings.AdditionalTags)
	if err != nil {
		return render.Result{}, err
	}

	input := &LaunchInput{
		Name:                  args.Name,
		ImageID:               args.AMI,
		InstanceType:          firstNonEmpty(args.InstanceType, settings.InstanceType),
		KeyName:               firstNonEmpty(args.KeyName, settings.KeyName),
		VolumeSize:            settings.VolumeSize,
		IAMInstanceProfileARN: settings.IAMInstanceProfileARN,
		AssociatePublicIP:     settings.VPC.PublicIP(),
		Tags:                  tags,
	}

	if args.VolumeSize > 0 {
		input.VolumeSize = args.VolumeSize
	}

	if settings.VPC != nil {
		input.SubnetID = settings.VPC.Subnet
		input.SecurityGroups = settings.VPC.SecurityGroups
	}

	if args.UserDataFile != "" {
		data, err := os.ReadFile(args.UserDataFile)
		if err != nil {
			return render.Result{}, fmt.Errorf("failed to read userdata: %w", err)
		}
		input.UserData = data
	}

	instances, err := client.Launch(ctx, input)
	if err != nil {
		return render.Result{}, err
	}

	rows := make([]*render.Row, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, instanceRow(inst))
	}

	return render.NewTable(rows), nil
}

// DescribeArgs are the arguments of ec2 describe.
type DescribeArgs struct {
	Name              string
	NameMatch         string
	IncludeTerminated bool
}

// Describe lists instances sorted by name and launch time.
func Describe(ctx context.Context, profile config.Profile, args DescribeArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	instances, err := client.ListInstances(ctx, &ListInstancesInput{
		Name:              args.Name,
		NameMatch:         args.NameMatch,
		IncludeTerminated: args.IncludeTerminated,
	})
	if err != nil {
		return render.Result{}, err
	}

	rows := make([]*render.Row, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, describeRow(inst))
	}

	return render.NewTable(rows), nil
}

// NameArgs select instances by their Name tag.
type NameArgs struct {
	Name string
}

// Start starts the instances with the given name.
func Start(ctx context.Context, profile config.Profile, args NameArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	changes, err := client.StartInstances(ctx, args.Name)
	if err != nil {
		return render.Result{}, err
	}

	return render.NewTable(stateRows(changes)), nil
}

// Stop stops the instances with the given name.
func Stop(ctx context.Context, profile config.Profile, args NameArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	changes, err := client.StopInstances(ctx, args.Name)
	if err != nil {
		return render.Result{}, err
	}

	return render.NewTable(stateRows(changes)), nil
}

// Terminate terminates the instances with the given name.
func Terminate(ctx context.Context, profile config.Profile, args NameArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	changes, err := client.TerminateInstances(ctx, args.Name)
	if err != nil {
		return render.Result{}, err
	}

	return render.NewTable(stateRows(changes)), nil
}

// ModifyArgs are the arguments of ec2 modify.
type ModifyArgs struct {
	Name string
	Type string
}

// Modify changes the instance type of stopped instances.
func Modify(ctx context.Context, profile config.Profile, args ModifyArgs) (render.Result, error) {
	if args.Type == "" {
		return render.Result{}, errors.New("instance type is required")
	}

	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	instances, err := client.ModifyInstanceType(ctx, args.Name, args.Type)
	if err != nil {
		return render.Result{}, err
	}

	rows := make([]*render.Row, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, describeRow(inst))
	}

	return render.NewTable(rows), nil
}

// TagsArgs are the arguments of ec2 tags.
type TagsArgs struct {
	Name string
	Keys []string
}

// Tags lists instance tags. With Keys, each key gets its own column and
// instances without the tag show an empty cell.
func Tags(ctx context.Context, profile config.Profile, args TagsArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	instances, err := client.ListInstances(ctx, &ListInstancesInput{Name: args.Name})
	if err != nil {
		return render.Result{}, err
	}

	rows := make([]*render.Row, 0, len(instances))
	for _, inst := range instances {
		row := render.NewRow("InstanceId", inst.ID, "Name", inst.Name)
		if len(args.Keys) == 0 {
			row.Set("Tags", formatTags(inst.Tags))
		}
		for _, k := range args.Keys {
			if v, ok := inst.Tags[k]; ok {
				row.Set("Tag: "+k, v)
			}
		}
		rows = append(rows, row)
	}

	if len(args.Keys) == 0 {
		return render.NewTable(rows), nil
	}

	columns := []string{"InstanceId", "Name"}
	for _, k := range args.Keys {
		columns = append(columns, "Tag: "+k)
	}

	return render.NewTable(rows, columns...), nil
}

// Logs returns the console output of the named instance.
func Logs(ctx context.Context, profile config.Profile, args NameArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	out, err := client.ConsoleOutput(ctx, args.Name)
	if err != nil || out == nil {
		return render.None(), err
	}

	return render.NewScalar(out.Output), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
