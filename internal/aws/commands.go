package aws

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// clientFor builds the client a command talks to. Tests replace it.
var clientFor = func(ctx context.Context, s *config.Settings) (*Client, error) {
	return NewClient(ctx, WithProfile(s.AWSProfile), WithRegion(s.Region))
}

// connect decodes a resolved profile and builds a client for it
func connect(ctx context.Context, profile config.Profile) (*config.Settings, *Client, error) {
	settings, err := config.Decode(profile)
	if err != nil {
		return nil, nil, err
	}

	client, err := clientFor(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("connected", "region", settings.Region, "aws_profile", settings.AWSProfile)

	return settings, client, nil
}

func instanceRow(inst pkgtypes.Instance) *render.Row {
	return render.NewRow(
		"InstanceId", inst.ID,
		"State", inst.State,
		"Name", inst.Name,
		"Type", inst.Type,
		"DnsName", inst.DNSName,
	)
}

func describeRow(inst pkgtypes.Instance) *render.Row {
	row := instanceRow(inst)
	if !inst.LaunchTime.IsZero() {
		row.Set("LaunchTime", inst.LaunchTime)
	} else {
		row.Set("LaunchTime", nil)
	}
	return row.Set("ImageId", inst.ImageID)
}

func stateRows(changes []pkgtypes.StateChange) []*render.Row {
	rows := make([]*render.Row, 0, len(changes))
	for _, ch := range changes {
		rows = append(rows, render.NewRow("InstanceId", ch.InstanceID, "State", ch.CurrentState))
	}
	return rows
}

// formatTags renders tags as "k=v" pairs ordered by key
func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+tags[k])
	}
	return strings.Join(pairs, ", ")
}
