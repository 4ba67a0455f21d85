package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	pkgtypes "github.com/vietdv277/aec/pkg/types"
)

// maxReceive is the most messages SQS returns from a single receive
const maxReceive = 10

// ReceiveMessages receives up to max messages from a queue without deleting
// them. They become visible again once the queue's visibility timeout expires.
func (c *Client) ReceiveMessages(ctx context.Context, queueURL string, max int) ([]pkgtypes.Message, error) {
	if max <= 0 || max > maxReceive {
		max = maxReceive
	}

	output, err := c.SQS.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: int32(max),
		WaitTimeSeconds:     1,
		MessageSystemAttributeNames: []sqstypes.MessageSystemAttributeName{
			sqstypes.MessageSystemAttributeNameSentTimestamp,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	messages := make([]pkgtypes.Message, 0, len(output.Messages))
	for _, m := range output.Messages {
		messages = append(messages, toMessage(m))
	}

	return messages, nil
}

// DrainQueue receives and deletes messages until the queue is empty, writing
// each one to w as a line of JSON before it is deleted. It returns the number
// of messages drained.
func (c *Client) DrainQueue(ctx context.Context, queueURL string, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	total := 0
	for {
		messages, err := c.ReceiveMessages(ctx, queueURL, maxReceive)
		if err != nil {
			return total, err
		}

		if len(messages) == 0 {
			return total, nil
		}

		entries := make([]sqstypes.DeleteMessageBatchRequestEntry, 0, len(messages))
		for i, m := range messages {
			if err := enc.Encode(m); err != nil {
				return total, fmt.Errorf("failed to write message %s: %w", m.ID, err)
			}
			entries = append(entries, sqstypes.DeleteMessageBatchRequestEntry{
				Id:            aws.String(strconv.Itoa(i)),
				ReceiptHandle: aws.String(m.ReceiptHandle),
			})
		}

		output, err := c.SQS.DeleteMessageBatch(ctx, &sqs.DeleteMessageBatchInput{
			QueueUrl: aws.String(queueURL),
			Entries:  entries,
		})
		if err != nil {
			return total, fmt.Errorf("failed to delete messages: %w", err)
		}

		if len(output.Failed) > 0 {
			f := output.Failed[0]
			return total, fmt.Errorf("failed to delete %d messages: %s", len(output.Failed), deref(f.Message))
		}

		total += len(messages)
		slog.Debug("drained messages", "queue", queueURL, "batch", len(messages), "total", total)
	}
}

// toMessage converts an SQS message to our Message type
func toMessage(m sqstypes.Message) pkgtypes.Message {
	msg := pkgtypes.Message{
		ID:            deref(m.MessageId),
		ReceiptHandle: deref(m.ReceiptHandle),
		Body:          deref(m.Body),
	}

	// SentTimestamp is milliseconds since the epoch
	if ts, ok := m.Attributes[string(sqstypes.MessageSystemAttributeNameSentTimestamp)]; ok {
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			msg.SentTimestamp = time.UnixMilli(ms).UTC()
		}
	}

	return msg
}
