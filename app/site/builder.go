package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/syeehyn/ai-daily/app/papers"
	"github.com/syeehyn/ai-daily/app/snapshot"
)

var issueDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Issue pairs an issue date with its parsed notes, newest first.
type Issue struct {
	Date  string
	Notes []*papers.Note
}

// Builder renders every issue directory into a static page and refreshes
// the archive index.
type Builder struct {
	issuesDir        string
	templatePath     string
	indexPath        string
	localSnapshotDir string
}

func NewBuilder(issuesDir, templatePath, indexPath, localSnapshotDir string) *Builder {
	return &Builder{
		issuesDir:        issuesDir,
		templatePath:     templatePath,
		indexPath:        indexPath,
		localSnapshotDir: localSnapshotDir,
	}
}

// Run builds all issue pages plus their issue-data.json adapters, updates
// the archive index, and returns the built issues newest first.
func (b *Builder) Run() ([]Issue, error) {
	templateData, err := os.ReadFile(b.templatePath)
	if err != nil {
		return nil, fmt.Errorf("template missing: %w", err)
	}
	template := string(templateData)

	if err := os.MkdirAll(b.issuesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create issues dir: %w", err)
	}

	dates, err := b.issueDates()
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(dates))
	for _, date := range dates {
		issueDir := filepath.Join(b.issuesDir, date)

		notes, err := papers.LoadDir(filepath.Join(issueDir, "papers"))
		if err != nil {
			return nil, err
		}

		page := renderIssuePage(date, notes, template, b.renderSnapshotSection(issueDir, date))
		if err := os.WriteFile(filepath.Join(issueDir, "index.html"), []byte(page), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write issue page: %w", err)
		}

		if err := WriteIssueData(issueDir); err != nil {
			return nil, err
		}

		issues = append(issues, Issue{Date: date, Notes: notes})
	}

	if err := b.updateArchiveIndex(issues); err != nil {
		return nil, err
	}

	return issues, nil
}

// issueDates lists valid YYYY-MM-DD issue directories, newest first.
func (b *Builder) issueDates() ([]string, error) {
	entries, err := os.ReadDir(b.issuesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read issues dir: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if !entry.IsDir() || !issueDateRe.MatchString(entry.Name()) {
			continue
		}
		if _, err := time.Parse("2006-01-02", entry.Name()); err != nil {
			continue
		}
		dates = append(dates, entry.Name())
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// renderSnapshotSection prefers the issue's own x-snapshot files, falling
// back to the local snapshot directory for the date, then to nothing.
func (b *Builder) renderSnapshotSection(issueDir, date string) string {
	mdPath := filepath.Join(issueDir, "x-snapshot.md")
	jsonPath := filepath.Join(issueDir, "x-snapshot.json")

	if !fileExists(mdPath) && !fileExists(jsonPath) && b.localSnapshotDir != "" {
		localDir := filepath.Join(b.localSnapshotDir, date)
		mdPath = filepath.Join(localDir, "x-snapshot.md")
		jsonPath = filepath.Join(localDir, "x-snapshot.json")
	}

	if data, err := os.ReadFile(mdPath); err == nil {
		return `<section class="x-snapshot">` +
			`<h2 class="section-title">X Daily Snapshot</h2>` +
			`<article class="x-snapshot-card">` + markdownToHTML(string(data)) + `</article>` +
			`</section>`
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return ""
	}

	var payload snapshot.Snapshot
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return renderSnapshotJSON(&payload)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
