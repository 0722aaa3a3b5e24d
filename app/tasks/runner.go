package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syeehyn/ai-daily/app/metrics"
	"github.com/syeehyn/ai-daily/app/snapshot"
	"github.com/syeehyn/ai-daily/app/source"
)

type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Run executes tasks sequentially, retrying recoverable failures up to the
// task's retry budget. Fatal pipeline errors abort the whole batch so a
// half-built issue is never published.
func (r *Runner) Run(ctx context.Context, taskList ...TaskInterface) error {
	for _, task := range taskList {
		if err := r.runOne(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, task TaskInterface) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		task.Start()
		err := task.Execute(ctx)
		metrics.TaskDuration.WithLabelValues(string(task.GetType())).Observe(task.GetDuration().Seconds())

		if err == nil {
			return nil
		}

		if isFatal(err) || !task.CanRetry() {
			return fmt.Errorf("task %s failed: %w", task.GetType(), err)
		}

		task.IncrementRetryCount()
		slog.Warn("Task failed, retrying",
			"type", task.GetType(),
			"date", task.GetDate(),
			"attempt", task.GetRetryCount(),
			"max_retries", task.GetMaxRetries(),
			"error", err)
	}
}

// isFatal reports whether retrying cannot help: a missing credential or a
// malformed timestamp will fail identically on every attempt.
func isFatal(err error) bool {
	var tsErr *snapshot.MalformedTimestampError
	if errors.As(err, &tsErr) {
		return true
	}
	return errors.Is(err, source.ErrMissingCredential) || errors.Is(err, context.Canceled)
}
