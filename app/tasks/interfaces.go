package tasks

import "context"

// TaskRunnerInterface defines the interface for task execution.
// The pipeline is deliberately single-threaded: tasks run in the order
// they are given, one at a time, so a snapshot never races a site build.
// Example usage:
//
//	runner := NewRunner()
//	err := runner.Run(ctx, NewBuildSnapshotTask(...), NewBuildSiteTask(...))
type TaskRunnerInterface interface {
	Run(ctx context.Context, taskList ...TaskInterface) error
}
