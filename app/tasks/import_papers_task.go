package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/syeehyn/ai-daily/app/papers"
)

type ImportPapersTask struct {
	Task
	feedURL  string
	issueDir string
	limit    int
}

func NewImportPapersTask(date, feedURL, issueDir string, limit int) *ImportPapersTask {
	return &ImportPapersTask{
		Task:     NewTask(TaskTypeImportPapers, date),
		feedURL:  feedURL,
		issueDir: issueDir,
		limit:    limit,
	}
}

func (t *ImportPapersTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	papersDir := filepath.Join(t.issueDir, "papers")

	importer := papers.NewFeedImporter()
	imported, err := importer.Run(ctx, t.feedURL, papersDir, t.limit)
	if err != nil {
		return fmt.Errorf("failed to import papers: %w", err)
	}

	slog.Info("Task completed",
		"type", "ImportPapers",
		"date", t.Date,
		"duration", t.GetDuration(),
		"imported", imported)

	return nil
}
