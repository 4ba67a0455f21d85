package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/aec/internal/aws"
	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the selected profile and authentication status",
	Long: `Display the profile aec would use and check that its credentials work.

Examples:
  aec status
  aec status --profile prod`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the AWS identity of the selected profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.WhoAmI, struct{}{})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, whoamiCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	resolver := newResolver()
	name := viper.GetString("profile")

	profile, err := resolver.Resolve(name)
	if err != nil {
		return err
	}

	settings, err := config.Decode(profile)
	if err != nil {
		return err
	}

	if name == "" {
		name = ui.MutedStyle.Render("(default_profile)")
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current Status")
	fmt.Fprintln(out, ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Fprintf(out, "Config:   %s\n", resolver.Path())
	fmt.Fprintf(out, "Profile:  %s\n", ui.NameStyle.Render(name))
	fmt.Fprintf(out, "Region:   %s\n", settings.Region)
	if settings.AWSProfile != "" {
		shared, err := aws.SharedProfile(cmd.Context(), settings.AWSProfile)
		switch {
		case err != nil:
			fmt.Fprintf(out, "AWS:      %s %s\n", settings.AWSProfile, ui.ErrorStyle.Render(err.Error()))
		case shared.Source != "":
			fmt.Fprintf(out, "AWS:      %s %s\n", shared.Name, ui.MutedStyle.Render("("+shared.Source+")"))
		default:
			fmt.Fprintf(out, "AWS:      %s\n", shared.Name)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprint(out, "Auth:     ")
	identity, err := aws.Identity(cmd.Context(), profile)
	if err != nil {
		fmt.Fprintln(out, ui.ErrorStyle.Render("✗ Not authenticated"))
		fmt.Fprintf(out, "          %s\n", ui.MutedStyle.Render(err.Error()))
		return nil
	}

	fmt.Fprintln(out, ui.DefaultStyle.Render("✓ Authenticated"))
	fmt.Fprintf(out, "Account:  %s\n", identity.Account)
	fmt.Fprintf(out, "User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Fprintf(out, "ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
	}

	return nil
}
