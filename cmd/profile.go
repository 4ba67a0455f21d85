package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/ui"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles in the config file",
	Long: `List the profiles defined in the aec config file.

Examples:
  aec profiles                  # List profiles
  aec profiles select           # Choose a profile interactively
  aec --profile $(aec profiles select) ec2 describe`,
	Args: cobra.NoArgs,
	RunE: runProfileList,
}

var profilesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List profiles in the config file",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profilesSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Choose a profile interactively and print its name",
	Args:  cobra.NoArgs,
	RunE:  runProfileSelect,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the aec config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved settings of a profile",
	Long: `Show the settings of the selected profile, including additional_tags
inherited from the top of the config file.

Examples:
  aec config show --profile prod`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, config.Show, struct{}{})
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd, configCmd)
	profilesCmd.AddCommand(profilesLsCmd, profilesSelectCmd)
	configCmd.AddCommand(configShowCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	profiles, err := newResolver().Profiles()
	if err != nil {
		return err
	}

	return newRunner(cmd).Print(config.ProfilesTable(profiles))
}

func runProfileSelect(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("profiles select needs an interactive terminal; use 'aec profiles' instead")
	}

	profiles, err := newResolver().Profiles()
	if err != nil {
		return err
	}

	selected, err := ui.SelectProfile(profiles)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), selected.Name)
	return nil
}
