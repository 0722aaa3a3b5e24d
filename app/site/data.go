package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/syeehyn/ai-daily/app/images"
	"github.com/syeehyn/ai-daily/app/papers"
)

// IssueData is the machine-readable adapter written next to each issue
// page; downstream consumers rely on this shape staying stable.
type IssueData struct {
	Date          string          `json:"date"`
	Title         string          `json:"title"`
	Digest        string          `json:"digest"`
	Papers        []PaperData     `json:"papers"`
	XSnapshot     json.RawMessage `json:"x_snapshot"`
	GeneratedAt   string          `json:"generated_at"`
	SchemaVersion string          `json:"schema_version"`
}

type PaperData struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Authors  string   `json:"authors"`
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url"`
	Markdown string   `json:"markdown"`
	Image    string   `json:"image,omitempty"`
}

// BuildIssueData assembles the adapter payload for one issue directory.
func BuildIssueData(issueDir string) (*IssueData, error) {
	date := filepath.Base(issueDir)

	var digest string
	digestTitle := ""
	if data, err := os.ReadFile(filepath.Join(issueDir, "digest.md")); err == nil {
		digest = string(data)
		front, _ := papers.ParseFrontMatter(digest)
		digestTitle = front["title"]
	}
	if digestTitle == "" {
		digestTitle = "AI Daily " + date
	}

	manifest, err := images.LoadManifest(issueDir)
	if err != nil {
		return nil, err
	}
	// Keyed by note filename stem so papers can be joined back to their
	// figures even when the manifest paper ID differs from the filename.
	figureMap := make(map[string]string, len(manifest.Papers))
	for _, entry := range manifest.Papers {
		if entry.StoredPath == "" {
			continue
		}
		stem := strings.TrimSuffix(entry.PaperFile, filepath.Ext(entry.PaperFile))
		figureMap[stem] = fmt.Sprintf("/api/assets/%s/figures/%s", date, filepath.Base(entry.StoredPath))
	}

	paperData, err := loadPaperData(filepath.Join(issueDir, "papers"), figureMap)
	if err != nil {
		return nil, err
	}

	var xSnapshot json.RawMessage
	if data, err := os.ReadFile(filepath.Join(issueDir, "x-snapshot.json")); err == nil {
		xSnapshot = json.RawMessage(bytes.TrimSpace(data))
	} else {
		xSnapshot = json.RawMessage("null")
	}

	return &IssueData{
		Date:          date,
		Title:         digestTitle,
		Digest:        digest,
		Papers:        paperData,
		XSnapshot:     xSnapshot,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		SchemaVersion: "2.0",
	}, nil
}

// WriteIssueData writes issue-data.json for one issue directory.
func WriteIssueData(issueDir string) error {
	payload, err := BuildIssueData(issueDir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode issue data: %w", err)
	}

	path := filepath.Join(issueDir, "issue-data.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write issue data: %w", err)
	}
	return nil
}

// loadPaperData uses the lighter adapter parse: front matter fields plus
// the first plain body line as summary, without the insight machinery.
func loadPaperData(papersDir string, figureMap map[string]string) ([]PaperData, error) {
	if _, err := os.Stat(papersDir); os.IsNotExist(err) {
		return []PaperData{}, nil
	}

	files, err := filepath.Glob(filepath.Join(papersDir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	sort.Strings(files)

	out := make([]PaperData, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read note: %w", err)
		}

		front, body := papers.ParseFrontMatter(string(data))
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

		title := front["title"]
		if title == "" {
			title = stem
		}
		authors := front["authors"]
		if authors == "" {
			authors = "Unknown authors"
		}

		url := front["url"]
		if url == "" {
			url = front["link"]
		}

		tags := parseDataTags(front["tags"])

		out = append(out, PaperData{
			ID:       stem,
			Title:    title,
			Authors:  authors,
			Summary:  firstBodyLine(body),
			Tags:     tags,
			URL:      url,
			Markdown: strings.TrimSpace(body),
			Image:    figureMap[stem],
		})
	}

	return out, nil
}

func firstBodyLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return "No summary available."
}

func parseDataTags(raw string) []string {
	text := strings.Trim(strings.TrimSpace(raw), "[]")
	if text == "" {
		return []string{}
	}

	var tags []string
	for _, item := range strings.Split(text, ",") {
		item = strings.Trim(strings.TrimSpace(item), `"'`)
		if item != "" {
			tags = append(tags, item)
		}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}
