// Package config loads aec profiles from the user's TOML config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// Top-level keys that are not profiles.
const (
	DefaultProfileKey = "default_profile"
	AdditionalTagsKey = "additional_tags"
)

// DefaultPath is used when no config file is given.
const DefaultPath = "~/.aec/config.toml"

// Document is a parsed config file.
type Document map[string]any

// Profile is the configuration of a single named profile. Its schema is owned
// by the commands that consume it; see Settings.
type Profile map[string]any

// ExpandPath replaces a leading ~ with the current user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, path[1:]), nil
}

// Resolver reads profiles from a config file. The file is read again on
// every call.
type Resolver struct {
	path string
}

// NewResolver creates a Resolver for the config file at path.
func NewResolver(path string) *Resolver {
	if path == "" {
		path = DefaultPath
	}
	return &Resolver{path: path}
}

// Path returns the config file path as given, before ~ expansion.
func (r *Resolver) Path() string {
	return r.path
}

// Load reads and parses the config file.
func (r *Resolver) Load() (Document, string, error) {
	path, err := ExpandPath(r.path)
	if err != nil {
		return nil, "", err
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, path, &Error{Kind: FileNotFound, Path: path}
	}

	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, path, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return doc, path, nil
}

// Resolve returns the named profile. An empty name selects the document's
// default_profile. A top-level additional_tags table is copied into the
// profile unless it defines its own.
func (r *Resolver) Resolve(name string) (Profile, error) {
	doc, path, err := r.Load()
	if err != nil {
		return nil, err
	}

	if name == "" {
		def, ok := doc[DefaultProfileKey].(string)
		if !ok || def == "" {
			return nil, &Error{Kind: NoProfileSpecified, Path: path}
		}
		name = def
	}

	if name == DefaultProfileKey || name == AdditionalTagsKey {
		return nil, &Error{Kind: ProfileNotFound, Path: path, Profile: name}
	}

	raw, ok := doc[name]
	if !ok {
		return nil, &Error{Kind: ProfileNotFound, Path: path, Profile: name}
	}

	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("profile %s in %s is not a table", name, path)
	}

	profile := make(Profile, len(table)+1)
	for k, v := range table {
		profile[k] = v
	}

	if tags, ok := doc[AdditionalTagsKey].(map[string]any); ok && len(tags) > 0 {
		if _, own := profile[AdditionalTagsKey]; !own {
			profile[AdditionalTagsKey] = tags
		}
	}

	slog.Debug("resolved profile", "profile", name, "path", path)

	return profile, nil
}

// Profiles lists the profiles in the config file, default first and the rest
// sorted by name.
func (r *Resolver) Profiles() ([]pkgtypes.Profile, error) {
	doc, _, err := r.Load()
	if err != nil {
		return nil, err
	}

	def, _ := doc[DefaultProfileKey].(string)

	var profiles []pkgtypes.Profile
	for name, raw := range doc {
		table, ok := raw.(map[string]any)
		if !ok || name == AdditionalTagsKey {
			continue
		}
		region, _ := table["region"].(string)
		profiles = append(profiles, pkgtypes.Profile{
			Name:    name,
			Region:  region,
			Default: name == def,
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Default != profiles[j].Default {
			return profiles[i].Default
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}
