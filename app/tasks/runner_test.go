package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/syeehyn/ai-daily/app/snapshot"
)

type fakeTask struct {
	Task
	failures int
	calls    int
	err      error
}

func newFakeTask(failures int, err error) *fakeTask {
	return &fakeTask{
		Task:     NewTask(TaskTypeBuildSite, "2025-11-03"),
		failures: failures,
		err:      err,
	}
}

func (t *fakeTask) Execute(ctx context.Context) error {
	t.calls++
	if t.calls <= t.failures {
		return t.err
	}
	return nil
}

func TestRunner_Run_Succeeds(t *testing.T) {
	runner := NewRunner()
	task := newFakeTask(0, nil)

	if err := runner.Run(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	if task.calls != 1 {
		t.Errorf("Expected 1 execution, got %d", task.calls)
	}
}

func TestRunner_Run_RetriesRecoverable(t *testing.T) {
	runner := NewRunner()
	task := newFakeTask(2, errors.New("transient failure"))

	if err := runner.Run(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	if task.calls != 3 {
		t.Errorf("Expected 3 executions (2 failures + success), got %d", task.calls)
	}
}

func TestRunner_Run_ExhaustsRetries(t *testing.T) {
	runner := NewRunner()
	task := newFakeTask(100, errors.New("always failing"))

	err := runner.Run(context.Background(), task)
	if err == nil {
		t.Fatal("Expected error after retry budget exhausted")
	}
	if task.calls != DefaultMaxRetries+1 {
		t.Errorf("Expected %d executions, got %d", DefaultMaxRetries+1, task.calls)
	}
}

func TestRunner_Run_FatalErrorNotRetried(t *testing.T) {
	runner := NewRunner()
	task := newFakeTask(100, &snapshot.MalformedTimestampError{Value: "garbage"})

	err := runner.Run(context.Background(), task)
	if err == nil {
		t.Fatal("Expected fatal error surfaced")
	}
	if task.calls != 1 {
		t.Errorf("Expected no retry for malformed timestamp, got %d executions", task.calls)
	}

	var tsErr *snapshot.MalformedTimestampError
	if !errors.As(err, &tsErr) {
		t.Errorf("Expected wrapped MalformedTimestampError, got %v", err)
	}
}

func TestRunner_Run_StopsOnFirstFailedTask(t *testing.T) {
	runner := NewRunner()
	failing := newFakeTask(100, &snapshot.MalformedTimestampError{Value: "garbage"})
	next := newFakeTask(0, nil)

	if err := runner.Run(context.Background(), failing, next); err == nil {
		t.Fatal("Expected error")
	}
	if next.calls != 0 {
		t.Errorf("Expected subsequent task not executed, got %d calls", next.calls)
	}
}
