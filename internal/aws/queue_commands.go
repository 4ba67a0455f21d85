package aws

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vietdv277/aec/internal/config"
	"github.com/vietdv277/aec/internal/render"
)

// ReceiveArgs are the arguments of sqs receive.
type ReceiveArgs struct {
	QueueURL string
	Max      int
}

// Receive peeks at messages on a queue.
func Receive(ctx context.Context, profile config.Profile, args ReceiveArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	messages, err := client.ReceiveMessages(ctx, args.QueueURL, args.Max)
	if err != nil {
		return render.Result{}, err
	}

	rows := make([]*render.Row, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, render.NewRow(
			"MessageId", m.ID,
			"SentTimestamp", m.SentTimestamp,
			"Body", m.Body,
		))
	}

	return render.NewTable(rows), nil
}

// openAppend opens the drain file; replaced in tests.
var openAppend = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
}

// DrainArgs are the arguments of sqs drain.
type DrainArgs struct {
	QueueURL string
	File     string
}

// Drain empties a queue, appending every message to File as JSON lines.
func Drain(ctx context.Context, profile config.Profile, args DrainArgs) (render.Result, error) {
	_, client, err := connect(ctx, profile)
	if err != nil {
		return render.Result{}, err
	}

	f, err := openAppend(args.File)
	if err != nil {
		return render.Result{}, fmt.Errorf("failed to open %s: %w", args.File, err)
	}

	n, err := client.DrainQueue(ctx, args.QueueURL, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s after draining %d messages: %w", args.File, n, cerr)
	}
	if err != nil {
		return render.Result{}, err
	}

	return render.NewScalar(fmt.Sprintf("Drained %d messages to %s", n, args.File)), nil
}
