package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/syeehyn/ai-daily/app/api"
	"github.com/syeehyn/ai-daily/app/cfg"
	"github.com/syeehyn/ai-daily/app/config"
	"github.com/syeehyn/ai-daily/app/database"
	"github.com/syeehyn/ai-daily/app/images"
	"github.com/syeehyn/ai-daily/app/site"
	"github.com/syeehyn/ai-daily/app/source"
	"github.com/syeehyn/ai-daily/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting AI Daily", "version", appCfg.Version, "command", appCfg.Command)

	snapshotCfg, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		slog.Error("Failed to load snapshot configuration", "path", appCfg.ConfigPath, "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	issueRepo := database.NewIssueRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	issueDir := filepath.Join(appCfg.IssuesDir, appCfg.Date)
	snapshotDir := filepath.Join(appCfg.DataDir, appCfg.Date)
	builder := site.NewBuilder(appCfg.IssuesDir, appCfg.TemplatePath, appCfg.IndexPath, appCfg.DataDir)
	runner := tasks.NewRunner()

	buildTask := func() tasks.TaskInterface {
		return tasks.NewBuildSiteTask(appCfg.Date, builder, issueRepo)
	}

	var taskList []tasks.TaskInterface
	switch appCfg.Command {
	case "snapshot":
		src, err := newSource(appCfg, snapshotCfg)
		if err != nil {
			slog.Error("Failed to initialize snapshot source", "error", err)
			os.Exit(1)
		}
		taskList = []tasks.TaskInterface{
			tasks.NewBuildSnapshotTask(appCfg.Date, snapshotCfg, src, snapshotDir, issueRepo),
		}

	case "import":
		taskList = []tasks.TaskInterface{
			tasks.NewImportPapersTask(appCfg.Date, appCfg.PapersFeedURL, issueDir, appCfg.PapersLimit),
		}

	case "images":
		taskList = []tasks.TaskInterface{
			tasks.NewFetchImagesTask(appCfg.Date, images.NewFetcher(appCfg.UserAgent), issueDir),
		}

	case "build":
		taskList = []tasks.TaskInterface{buildTask()}

	case "all":
		src, err := newSource(appCfg, snapshotCfg)
		if err != nil {
			slog.Error("Failed to initialize snapshot source", "error", err)
			os.Exit(1)
		}
		taskList = []tasks.TaskInterface{
			tasks.NewImportPapersTask(appCfg.Date, appCfg.PapersFeedURL, issueDir, appCfg.PapersLimit),
			tasks.NewBuildSnapshotTask(appCfg.Date, snapshotCfg, src, snapshotDir, issueRepo),
			tasks.NewFetchImagesTask(appCfg.Date, images.NewFetcher(appCfg.UserAgent), issueDir),
			buildTask(),
		}

	case "serve":
		runServer(ctx, appCfg, issueRepo, runner, buildTask)
		return

	default:
		slog.Error("Unknown command", "command", appCfg.Command)
		os.Exit(1)
	}

	if err := runner.Run(ctx, taskList...); err != nil {
		slog.Error("Run failed", "command", appCfg.Command, "error", err)
		os.Exit(1)
	}
}

// runServer builds the site once, then serves the archive, rebuilding on
// demand and, with --watch, on issue file changes.
func runServer(ctx context.Context, appCfg *cfg.Cfg, issueRepo database.IssueRepository,
	runner *tasks.Runner, buildTask func() tasks.TaskInterface) {

	if err := runner.Run(ctx, buildTask()); err != nil {
		slog.Warn("Initial site build failed", "error", err)
	}

	rebuild := func() error {
		return runner.Run(context.Background(), buildTask())
	}

	if appCfg.Watch {
		watcher, err := site.NewWatcher(appCfg.IssuesDir, func() {
			if err := rebuild(); err != nil {
				slog.Error("Watch rebuild failed", "error", err)
			}
		})
		if err != nil {
			slog.Error("Failed to start watcher", "error", err)
			os.Exit(1)
		}
		defer watcher.Close()
		go watcher.Run(ctx)
		slog.Info("Watching for issue changes", "dir", appCfg.IssuesDir)
	}

	handler := api.NewHandler(issueRepo, appCfg.IssuesDir, appCfg.Version, rebuild)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}

// newSource picks the mock fixture when one is configured, the live X API
// client otherwise.
func newSource(appCfg *cfg.Cfg, snapshotCfg *config.Config) (source.Source, error) {
	if appCfg.MockPath != "" {
		slog.Info("Using mock snapshot source", "path", appCfg.MockPath)
		return source.NewMockSource(appCfg.MockPath), nil
	}
	return source.NewClient(snapshotCfg, appCfg.XBearerToken, "", appCfg.UserAgent)
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
