package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vietdv277/aec/internal/aws"
)

var ssmCmd = &cobra.Command{
	Use:   "ssm",
	Short: "Systems Manager commands",
	Long: `Systems Manager commands.

Examples:
  aec ssm describe                       # Instances registered with SSM
  aec ssm commands --name alice          # Recent commands run on alice
  aec ssm output <command-id> <instance-id>`,
}

var ssmDescribeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List instances managed by SSM",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.SSMDescribe, struct{}{})
	},
}

var ssmCommandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List recent command invocations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.SSMCommands, aws.NameArgs{Name: ssmInstanceName})
	},
}

var ssmOutputCmd = &cobra.Command{
	Use:   "output <command-id> <instance-id>",
	Short: "Show the output of a command on an instance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.SSMOutput, aws.SSMOutputArgs{CommandID: args[0], InstanceID: args[1]})
	},
}

var ssmInstanceName string

func init() {
	rootCmd.AddCommand(ssmCmd)
	ssmCmd.AddCommand(ssmDescribeCmd, ssmCommandsCmd, ssmOutputCmd)

	ssmCommandsCmd.Flags().StringVarP(&ssmInstanceName, "name", "n", "", "Only commands run on instances with this name")
}
