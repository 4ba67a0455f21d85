package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vietdv277/aec/internal/aws"
)

var sqsCmd = &cobra.Command{
	Use:   "sqs",
	Short: "Inspect and drain SQS queues",
}

var sqsReceiveCmd = &cobra.Command{
	Use:   "receive <queue-url>",
	Short: "Peek at messages without deleting them",
	Long: `Receive messages without deleting them. They become visible to other
consumers again once the queue's visibility timeout expires.

Examples:
  aec sqs receive https://sqs.us-east-1.amazonaws.com/123456789012/jobs --max 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Receive, aws.ReceiveArgs{QueueURL: args[0], Max: receiveMax})
	},
}

var sqsDrainCmd = &cobra.Command{
	Use:   "drain <queue-url> <file>",
	Short: "Delete all messages, saving them to a file",
	Long: `Receive and delete messages until the queue is empty. Each message is
appended to the file as a line of JSON before it is deleted.

Examples:
  aec sqs drain https://sqs.us-east-1.amazonaws.com/123456789012/jobs-dlq dlq.jsonl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, aws.Drain, aws.DrainArgs{QueueURL: args[0], File: args[1]})
	},
}

var receiveMax int

func init() {
	rootCmd.AddCommand(sqsCmd)
	sqsCmd.AddCommand(sqsReceiveCmd, sqsDrainCmd)

	sqsReceiveCmd.Flags().IntVarP(&receiveMax, "max", "m", 10, "Maximum number of messages (1-10)")
}
