package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syeehyn/ai-daily/app/images"
)

type FetchImagesTask struct {
	Task
	fetcher  *images.Fetcher
	issueDir string
}

func NewFetchImagesTask(date string, fetcher *images.Fetcher, issueDir string) *FetchImagesTask {
	return &FetchImagesTask{
		Task:     NewTask(TaskTypeFetchImages, date),
		fetcher:  fetcher,
		issueDir: issueDir,
	}
}

func (t *FetchImagesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	manifest, err := t.fetcher.ProcessIssue(ctx, t.issueDir)
	if err != nil {
		return fmt.Errorf("failed to process issue images: %w", err)
	}

	placeholders := 0
	for _, entry := range manifest.Papers {
		if entry.Source == "generated_placeholder" {
			placeholders++
		}
	}

	slog.Info("Task completed",
		"type", "FetchImages",
		"date", t.Date,
		"duration", t.GetDuration(),
		"papers", len(manifest.Papers),
		"placeholders", placeholders)

	return nil
}
