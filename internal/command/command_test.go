package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
)

type describeArgs struct {
	Name string
}

// describe returns one row per call, echoing the profile's region.
func describe(ctx context.Context, profile config.Profile, args describeArgs) (render.Result, error) {
	return render.NewTable([]*render.Row{
		render.NewRow("Name", args.Name, "Region", profile["region"]),
	}), nil
}

type stubResolver struct {
	profiles map[string]config.Profile
	asked    []string
}

func (s *stubResolver) Resolve(name string) (config.Profile, error) {
	s.asked = append(s.asked, name)
	p, ok := s.profiles[name]
	if !ok {
		return nil, &config.Error{Kind: config.ProfileNotFound, Path: "test.toml", Profile: name}
	}
	return p, nil
}

func TestFuncCalledDirectlyReturnsRawResult(t *testing.T) {
	var fn Func[describeArgs] = describe

	res, err := fn(context.Background(), config.Profile{"region": "us-east-1"}, describeArgs{Name: "alice"})

	require.NoError(t, err)
	assert.Equal(t, render.KindTable, res.Kind)
	require.Len(t, res.Rows, 1)
	name, _ := res.Rows[0].Get("Name")
	assert.Equal(t, "alice", name)
}

func TestRunResolvesAndRenders(t *testing.T) {
	resolver := &stubResolver{profiles: map[string]config.Profile{
		"default": {"region": "us-east-1"},
	}}
	var out bytes.Buffer
	runner := NewRunner(resolver, WithOutput(&out))

	err := Run(context.Background(), runner, "default", describe, describeArgs{Name: "alice"})

	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, resolver.asked)
	assert.Equal(t, "Name   Region     \nalice  us-east-1  \n", out.String())
}

func TestRunPropagatesResolverError(t *testing.T) {
	resolver := &stubResolver{}
	var out bytes.Buffer
	called := false
	fn := func(ctx context.Context, profile config.Profile, args struct{}) (render.Result, error) {
		called = true
		return render.None(), nil
	}

	err := Run(context.Background(), NewRunner(resolver, WithOutput(&out)), "missing", fn, struct{}{})

	assert.ErrorIs(t, err, config.ErrProfileNotFound)
	assert.False(t, called)
	assert.Empty(t, out.String())
}

func TestRunPropagatesCommandError(t *testing.T) {
	resolver := &stubResolver{profiles: map[string]config.Profile{"p": {}}}
	boom := errors.New("boom")
	fn := func(ctx context.Context, profile config.Profile, args int) (render.Result, error) {
		return render.Result{}, boom
	}
	var out bytes.Buffer

	err := Run(context.Background(), NewRunner(resolver, WithOutput(&out)), "p", fn, 1)

	assert.Same(t, boom, err)
	assert.Empty(t, out.String())
}

func TestRunEmptyTable(t *testing.T) {
	resolver := &stubResolver{profiles: map[string]config.Profile{"p": {}}}
	fn := func(ctx context.Context, profile config.Profile, args struct{}) (render.Result, error) {
		return render.NewTable(nil), nil
	}
	var out bytes.Buffer

	err := Run(context.Background(), NewRunner(resolver, WithOutput(&out)), "p", fn, struct{}{})

	require.NoError(t, err)
	assert.Equal(t, "No results\n", out.String())
}

func TestRunWithFormat(t *testing.T) {
	resolver := &stubResolver{profiles: map[string]config.Profile{"p": {"region": "eu-west-1"}}}
	var out bytes.Buffer

	err := Run(context.Background(), NewRunner(resolver, WithOutput(&out), WithFormat(render.FormatJSON)), "p", describe, describeArgs{Name: "bob"})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"Name":"bob","Region":"eu-west-1"}]`, out.String())
}

func TestRunWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "default_profile = \"dev\"\n\n[dev]\nregion = \"ap-southeast-2\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	var out bytes.Buffer
	runner := NewRunner(config.NewResolver(path), WithOutput(&out))

	err := Run(context.Background(), runner, "", describe, describeArgs{Name: "sam"})

	require.NoError(t, err)
	assert.Equal(t, "Name  Region          \nsam   ap-southeast-2  \n", out.String())
}
