package types

import "time"

// Message is a message received from an SQS queue
type Message struct {
	ID            string    `json:"MessageId"`
	ReceiptHandle string    `json:"-"`
	Body          string    `json:"Body"`
	SentTimestamp time.Time `json:"SentTimestamp"`
}
