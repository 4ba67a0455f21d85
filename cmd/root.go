package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/aec/internal/command"
	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
	"github.com/vietdv277/aec/internal/ui"
)

// DefaultProfile is the profile used when --profile is not given
const DefaultProfile = "default"

var rootCmd = &cobra.Command{
	Use:   "aec",
	Short: "aec - AWS easy CLI",
	Long: `aec is a command-line tool for common AWS EC2, SQS and SSM tasks.

Settings such as region, key pair, subnet and tags come from a profile in
~/.aec/config.toml, so everyday commands need few flags.

Examples:
  aec ec2 launch alice ami-0123456789abcdef0   # Launch a tagged instance
  aec ec2 describe                             # List instances
  aec ec2 stop --name alice                    # Stop instances by name
  aec sqs receive https://sqs...               # Peek at queue messages
  aec whoami --profile prod                    # Show the caller identity
  aec profiles                                 # List profiles in the config file`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error(), isTerminal(os.Stderr)))
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.StringP("profile", "p", DefaultProfile, "Profile in the config file to use (empty for default_profile)")
	pf.String("config", config.DefaultPath, "Path to the aec config file")
	pf.StringP("output", "o", render.FormatTable, "Output format: "+strings.Join(render.Formats, ", "))
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper
	for _, name := range []string{"profile", "config", "output", "verbose"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

func initConfig() {
	// AEC_PROFILE, AEC_CONFIG, AEC_OUTPUT, AEC_LOG_LEVEL, ...
	viper.SetEnvPrefix("AEC")
	viper.AutomaticEnv()
}

func preRun(cmd *cobra.Command, args []string) error {
	setupLogging(cmd.ErrOrStderr())

	output := strings.ToLower(viper.GetString("output"))
	if !slices.Contains(render.Formats, output) {
		return fmt.Errorf("unknown output format %q (want one of %s)", output, strings.Join(render.Formats, ", "))
	}

	return nil
}

// newRunner builds the runner that resolves profiles and prints results for cmd
func newRunner(cmd *cobra.Command) *command.Runner {
	return command.NewRunner(
		newResolver(),
		command.WithOutput(cmd.OutOrStdout()),
		command.WithFormat(strings.ToLower(viper.GetString("output"))),
	)
}

func newResolver() *config.Resolver {
	return config.NewResolver(viper.GetString("config"))
}

// run resolves the selected profile and calls fn with it
func run[A any](cmd *cobra.Command, fn command.Func[A], args A) error {
	return command.Run(cmd.Context(), newRunner(cmd), viper.GetString("profile"), fn, args)
}
