// Package command connects command functions to the command line.
//
// A command is a Func: it always receives an already resolved profile and
// returns a render.Result. Code that has a profile in hand, such as tests or
// other commands, calls the Func directly and gets the raw result back. The
// CLI goes through Run instead, which resolves the profile from the config
// file, calls the Func and prints the rendered result.
package command

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
)

// Func is a command implementation.
type Func[A any] func(ctx context.Context, profile config.Profile, args A) (render.Result, error)

// ProfileResolver resolves a profile by name. An empty name selects the
// config file's default profile.
type ProfileResolver interface {
	Resolve(name string) (config.Profile, error)
}

// Runner resolves configuration and prints results for CLI invocations.
type Runner struct {
	resolver ProfileResolver
	out      io.Writer
	format   string
}

// Option customises a Runner.
type Option func(*Runner)

// WithOutput sets where rendered results are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithFormat sets the output format, one of render.Formats.
func WithFormat(format string) Option {
	return func(r *Runner) {
		r.format = format
	}
}

// NewRunner creates a Runner that resolves profiles with resolver and writes
// tables to stdout unless configured otherwise.
func NewRunner(resolver ProfileResolver, opts ...Option) *Runner {
	r := &Runner{
		resolver: resolver,
		out:      os.Stdout,
		format:   render.FormatTable,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Print renders res to the runner's output.
func (r *Runner) Print(res render.Result) error {
	return render.Encode(r.out, res, r.format)
}

// Run resolves the named profile, calls fn with it and prints the result.
// Errors from resolution and from fn are returned unchanged.
func Run[A any](ctx context.Context, r *Runner, profileName string, fn Func[A], args A) error {
	profile, err := r.resolver.Resolve(profileName)
	if err != nil {
		return err
	}

	res, err := fn(ctx, profile, args)
	if err != nil {
		return err
	}

	slog.Debug("command finished", "profile", profileName, "result", res.Kind.String())

	return r.Print(res)
}
