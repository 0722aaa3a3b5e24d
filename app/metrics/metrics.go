// Package metrics registers the Prometheus collectors shared by the
// pipeline tasks and the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SnapshotRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_daily_snapshot_runs_total",
		Help: "Snapshot pipeline runs by source and outcome.",
	}, []string{"source", "status"})

	SnapshotPosts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ai_daily_snapshot_posts",
		Help: "Posts emitted by the last snapshot run, per stream.",
	}, []string{"stream"})

	SiteBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_daily_site_builds_total",
		Help: "Static site builds by outcome.",
	}, []string{"status"})

	IssuesBuilt = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ai_daily_issues_built",
		Help: "Issues rendered by the last site build.",
	})

	TaskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_daily_task_duration_seconds",
		Help:    "Task execution duration by task type.",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})
)
