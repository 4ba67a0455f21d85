package config

import (
	"context"
	"sort"

	"github.com/vietdv277/aec/internal/render"
	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// Show returns the resolved profile as an object with keys in sorted order.
// Nested tables are kept as they are.
func Show(_ context.Context, profile Profile, _ struct{}) (render.Result, error) {
	keys := make([]string, 0, len(profile))
	for k := range profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := render.NewRow()
	for _, k := range keys {
		row.Set(k, profile[k])
	}

	return render.NewObject(row), nil
}

// ProfilesTable lists profiles with their region and which one is the default.
func ProfilesTable(profiles []pkgtypes.Profile) render.Result {
	rows := make([]*render.Row, 0, len(profiles))
	for _, p := range profiles {
		var region any
		if p.Region != "" {
			region = p.Region
		}

		def := ""
		if p.Default {
			def = "*"
		}

		rows = append(rows, render.NewRow("Name", p.Name, "Region", region, "Default", def))
	}

	return render.NewTable(rows)
}
