package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vietdv277/aec/internal/aws"
)

var ec2Cmd = &cobra.Command{
	Use:   "ec2",
	Short: "Manage EC2 instances and images",
	Long:  `Launch, list, start, stop and terminate EC2 instances, and manage AMIs and key pairs.`,
}

var ec2LaunchCmd = &cobra.Command{
	Use:   "launch <name> <ami>",
	Short: "Launch a tagged EC2 instance",
	Long: `Launch an instance into the profile's subnet and security groups.

The instance is tagged with Name, the profile's owner and additional_tags.

Examples:
  aec ec2 launch alice ami-0123456789abcdef0
  aec ec2 launch alice ami-0123456789abcdef0 --instance-type c5.large --volume-size 100
  aec ec2 launch alice ami-0123456789abcdef0 --userdata userdata/docker.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		launchArgs.Name, launchArgs.AMI = args[0], args[1]
		return run(cmd, aws.Launch, launchArgs)
	},
}

var ec2DescribeCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"ls"},
	Short:   "List EC2 instances",
	Long: `List instances sorted by name and launch time.

Examples:
  aec ec2 describe                      # All instances that are not terminated
  aec ec2 describe --name alice         # Instances named exactly alice
  aec ec2 describe --name-match ali     # Instances whose name contains ali
  aec ec2 describe --include-terminated`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Describe, describeArgs)
	},
}

var ec2StartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start instances by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Start, aws.NameArgs{Name: instanceName})
	},
}

var ec2StopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop instances by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Stop, aws.NameArgs{Name: instanceName})
	},
}

var ec2TerminateCmd = &cobra.Command{
	Use:   "terminate",
	Short: "Terminate instances by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Terminate, aws.NameArgs{Name: instanceName})
	},
}

var ec2ModifyCmd = &cobra.Command{
	Use:   "modify",
	Short: "Change the instance type of stopped instances",
	Long: `Change the instance type of stopped instances.

Examples:
  aec ec2 modify --name alice --type c5.2xlarge`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Modify, aws.ModifyArgs{Name: instanceName, Type: instanceType})
	},
}

var ec2TagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List instance tags",
	Long: `List instance tags.

Examples:
  aec ec2 tags                          # All tags as key=value pairs
  aec ec2 tags --name alice
  aec ec2 tags --keys Owner --keys Project   # One column per key`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Tags, aws.TagsArgs{Name: instanceName, Keys: tagKeys})
	},
}

var ec2LogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the console output of an instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Logs, aws.NameArgs{Name: instanceName})
	},
}

var ec2DescribeImagesCmd = &cobra.Command{
	Use:   "describe-images",
	Short: "List AMIs, newest first",
	Long: `List AMIs, newest first.

Without --ami or --owner, the profile's describe_images_owners are used, or
your own images if none are configured.

Examples:
  aec ec2 describe-images
  aec ec2 describe-images --owner 099720109477 --name-match ubuntu`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.DescribeImages, imagesArgs)
	},
}

var ec2DeleteImageCmd = &cobra.Command{
	Use:   "delete-image <ami>",
	Short: "Deregister an AMI and delete its snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.DeleteImage, aws.ImageArgs{AMI: args[0]})
	},
}

var ec2ShareImageCmd = &cobra.Command{
	Use:   "share-image <ami> <account>",
	Short: "Allow another account to launch an AMI",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.ShareImage, aws.ShareImageArgs{AMI: args[0], Account: args[1]})
	},
}

var ec2CreateKeyPairCmd = &cobra.Command{
	Use:   "create-key-pair <name> <file>",
	Short: "Create a key pair and save its private key",
	Long: `Create a key pair and save the private key to a new file with mode 0600.

Examples:
  aec ec2 create-key-pair alice ~/.ssh/alice.pem`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.CreateKeyPair, aws.KeyPairArgs{Name: args[0], File: args[1]})
	},
}

var (
	// ec2 flags
	launchArgs   aws.LaunchArgs
	describeArgs aws.DescribeArgs
	imagesArgs   aws.DescribeImagesArgs
	instanceName string
	instanceType string
	tagKeys      []string
)

func init() {
	rootCmd.AddCommand(ec2Cmd)

	ec2Cmd.AddCommand(
		ec2LaunchCmd,
		ec2DescribeCmd,
		ec2StartCmd,
		ec2StopCmd,
		ec2TerminateCmd,
		ec2ModifyCmd,
		ec2TagsCmd,
		ec2LogsCmd,
		ec2DescribeImagesCmd,
		ec2DeleteImageCmd,
		ec2ShareImageCmd,
		ec2CreateKeyPairCmd,
	)

	// Flags for ec2 launch
	ec2LaunchCmd.Flags().StringVarP(&launchArgs.InstanceType, "instance-type", "t", "", "Instance type (default from profile, else t3.small)")
	ec2LaunchCmd.Flags().StringVar(&launchArgs.KeyName, "key-name", "", "Key pair name (default from profile)")
	ec2LaunchCmd.Flags().IntVar(&launchArgs.VolumeSize, "volume-size", 0, "Root volume size in GiB (default from profile, else 20)")
	ec2LaunchCmd.Flags().StringVar(&launchArgs.UserDataFile, "userdata", "", "File with user data to pass to the instance")

	// Flags for ec2 describe
	ec2DescribeCmd.Flags().StringVarP(&describeArgs.Name, "name", "n", "", "Only instances with this exact name")
	ec2DescribeCmd.Flags().StringVar(&describeArgs.NameMatch, "name-match", "", "Only instances whose name contains this text")
	ec2DescribeCmd.Flags().BoolVarP(&describeArgs.IncludeTerminated, "include-terminated", "a", false, "Include terminated instances")

	// Commands selecting instances by name
	for _, c := range []*cobra.Command{ec2StartCmd, ec2StopCmd, ec2TerminateCmd, ec2ModifyCmd, ec2LogsCmd} {
		c.Flags().StringVarP(&instanceName, "name", "n", "", "Instance name")
		_ = c.MarkFlagRequired("name")
	}
	ec2TagsCmd.Flags().StringVarP(&instanceName, "name", "n", "", "Only instances with this name")
	ec2TagsCmd.Flags().StringSliceVarP(&tagKeys, "keys", "k", nil, "Tag keys to show as columns")

	ec2ModifyCmd.Flags().StringVarP(&instanceType, "type", "t", "", "New instance type")
	_ = ec2ModifyCmd.MarkFlagRequired("type")

	// Flags for ec2 describe-images
	ec2DescribeImagesCmd.Flags().StringVar(&imagesArgs.AMI, "ami", "", "Only this AMI")
	ec2DescribeImagesCmd.Flags().StringVar(&imagesArgs.Owner, "owner", "", "Only AMIs owned by this account")
	ec2DescribeImagesCmd.Flags().StringVar(&imagesArgs.NameMatch, "name-match", "", "Only AMIs whose name contains this text")
}
