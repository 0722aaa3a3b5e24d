package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syeehyn/ai-daily/app/database"
	"github.com/syeehyn/ai-daily/app/metrics"
	"github.com/syeehyn/ai-daily/app/site"
)

type BuildSiteTask struct {
	Task
	builder *site.Builder
	repo    database.IssueRepository
}

func NewBuildSiteTask(date string, builder *site.Builder, repo database.IssueRepository) *BuildSiteTask {
	return &BuildSiteTask{
		Task:    NewTask(TaskTypeBuildSite, date),
		builder: builder,
		repo:    repo,
	}
}

func (t *BuildSiteTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	issues, err := t.builder.Run()
	if err != nil {
		metrics.SiteBuilds.WithLabelValues("error").Inc()
		return fmt.Errorf("site build failed: %w", err)
	}

	if t.repo != nil {
		generatedAt := time.Now().UTC().Format(time.RFC3339)
		for _, issue := range issues {
			title := "AI Daily " + issue.Date
			if err := t.repo.UpsertIssue(issue.Date, title, len(issue.Notes), generatedAt); err != nil {
				return fmt.Errorf("failed to store issue %s: %w", issue.Date, err)
			}
		}
	}

	metrics.SiteBuilds.WithLabelValues("success").Inc()
	metrics.IssuesBuilt.Set(float64(len(issues)))

	slog.Info("Task completed",
		"type", "BuildSite",
		"date", t.Date,
		"duration", t.GetDuration(),
		"issues", len(issues))

	return nil
}
