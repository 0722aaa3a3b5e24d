package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/syeehyn/ai-daily/app/config"
	"github.com/syeehyn/ai-daily/app/database"
	"github.com/syeehyn/ai-daily/app/metrics"
	"github.com/syeehyn/ai-daily/app/snapshot"
	"github.com/syeehyn/ai-daily/app/source"
)

type BuildSnapshotTask struct {
	Task
	cfg    *config.Config
	src    source.Source
	outDir string
	repo   database.IssueRepository
}

// NewBuildSnapshotTask builds the X snapshot for one issue date. Output
// lands in outDir as x-snapshot.md and x-snapshot.json; repo may be nil
// when no database is attached.
func NewBuildSnapshotTask(date string, cfg *config.Config, src source.Source, outDir string, repo database.IssueRepository) *BuildSnapshotTask {
	return &BuildSnapshotTask{
		Task:   NewTask(TaskTypeBuildSnapshot, date),
		cfg:    cfg,
		src:    src,
		outDir: outDir,
		repo:   repo,
	}
}

func (t *BuildSnapshotTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fetched, err := t.src.Fetch(ctx)
	if err != nil {
		metrics.SnapshotRuns.WithLabelValues(t.src.Name(), "error").Inc()
		return fmt.Errorf("failed to fetch posts: %w", err)
	}

	pipeline := snapshot.NewPipeline(t.cfg, t.src.Name(), time.Now().UTC())
	payload, markdown, err := pipeline.Run(t.Date, fetched)
	if err != nil {
		metrics.SnapshotRuns.WithLabelValues(t.src.Name(), "error").Inc()
		return fmt.Errorf("pipeline failed: %w", err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(t.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Both documents are written atomically so a crash mid-write never
	// leaves a truncated snapshot on disk.
	if err := writeFileAtomic(filepath.Join(t.outDir, "x-snapshot.md"), []byte(markdown)); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(t.outDir, "x-snapshot.json"), buf.Bytes()); err != nil {
		return err
	}

	if t.repo != nil {
		if err := t.repo.UpsertSnapshot(t.Date, payload.Source, buf.String(), payload.GeneratedAt); err != nil {
			return fmt.Errorf("failed to store snapshot: %w", err)
		}
	}

	metrics.SnapshotRuns.WithLabelValues(t.src.Name(), "success").Inc()
	metrics.SnapshotPosts.WithLabelValues("timeline").Set(float64(len(payload.Raw.TimelinePosts)))
	metrics.SnapshotPosts.WithLabelValues("topics").Set(float64(len(payload.Raw.TopicPosts)))

	slog.Info("Task completed",
		"type", "BuildSnapshot",
		"date", t.Date,
		"duration", t.GetDuration(),
		"source", payload.Source,
		"timeline_posts", len(payload.Raw.TimelinePosts),
		"topic_posts", len(payload.Raw.TopicPosts))

	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
