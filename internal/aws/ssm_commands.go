package aws

import (
	"context"
	"strings"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// SSMDescribe lists the instances managed by SSM.
func SSMDescribe(ctx context.Context, profile config.Profile, _ struct{}) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	instances, err := client.ListManagedInstances(ctx)
	if err != nil {
		return render.Result{}, err
	}

	rows := make([]*render.Row, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, render.NewRow(
			"ID", inst.ID,
			"Name", inst.ComputerName,
			"PingStatus", inst.PingStatus,
			"Platform", inst.Platform,
			"AgentVersion", inst.AgentVersion,
			"LastPingDateTime", inst.LastPing,
		))
	}

	return render.NewTable(rows), nil
}

// SSMCommands lists recent command invocations, optionally only those on the
// instances with the given name.
func SSMCommands(ctx context.Context, profile config.Profile, args NameArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	var invocations []pkgtypes.CommandInvocation

	if args.Name == "" {
		invocations, err = client.ListCommandInvocations(ctx, "")
		if err != nil {
			return render.Result{}, err
		}
	} else {
		ids, err := client.instanceIDs(ctx, args.Name)
		if err != nil {
			return render.Result{}, err
		}
		for _, id := range ids {
			found, err := client.ListCommandInvocations(ctx, id)
			if err != nil {
				return render.Result{}, err
			}
			invocations = append(invocations, found...)
		}
	}

	rows := make([]*render.Row, 0, len(invocations))
	for _, inv := range invocations {
		rows = append(rows, render.NewRow(
			"CommandId", inv.CommandID,
			"InstanceId", inv.InstanceID,
			"DocumentName", inv.DocumentName,
			"Status", inv.Status,
			"RequestedDateTime", inv.Requested,
		))
	}

	return render.NewTable(rows), nil
}

// SSMOutputArgs identify a command invocation.
type SSMOutputArgs struct {
	CommandID  string
	InstanceID string
}

// SSMOutput returns what a command wrote to stdout, followed by stderr if any.
func SSMOutput(ctx context.Context, profile config.Profile, args SSMOutputArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	out, err := client.CommandOutput(ctx, args.CommandID, args.InstanceID)
	if err != nil {
		return render.Result{}, err
	}

	text := out.Stdout
	if out.Stderr != "" {
		text = strings.TrimRight(text, "\n") + "\n" + out.Stderr
	}

	return render.NewScalar(text), nil
}

// Identity returns the caller identity the profile's credentials resolve to.
func Identity(ctx context.Context, profile config.Profile) (*pkgtypes.CallerIdentity, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return nil, err
	}

	return client.CallerIdentity(ctx)
}

// WhoAmI returns the identity the profile's credentials resolve to.
func WhoAmI(ctx context.Context, profile config.Profile, _ struct{}) (render.Result, error) {
	id, err := Identity(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	return render.NewObject(render.NewRow(
		"Account", id.Account,
		"Arn", id.Arn,
		"UserId", id.UserID,
	)), nil
}
