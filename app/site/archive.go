package site

import (
	"fmt"
	"html"
	"os"
	"strings"
)

const (
	archiveStart = "<!-- ARCHIVE_LIST_START -->"
	archiveEnd   = "<!-- ARCHIVE_LIST_END -->"
)

// updateArchiveIndex rewrites the issue-card block between the archive
// markers in the index page, leaving everything around it untouched.
func (b *Builder) updateArchiveIndex(issues []Issue) error {
	data, err := os.ReadFile(b.indexPath)
	if err != nil {
		return fmt.Errorf("archive index not found: %w", err)
	}
	original := string(data)

	if !strings.Contains(original, archiveStart) || !strings.Contains(original, archiveEnd) {
		return fmt.Errorf("archive markers not found in %s", b.indexPath)
	}

	var cards string
	if len(issues) > 0 {
		rendered := make([]string, 0, len(issues))
		for _, issue := range issues {
			rendered = append(rendered, buildArchiveCard(issue))
		}
		cards = strings.Join(rendered, "\n      ")
	} else {
		cards = `<div class="empty">暂无已发布 issue，运行 ai-daily build 后会自动生成。</div>`
	}

	before, rest, _ := strings.Cut(original, archiveStart)
	_, after, _ := strings.Cut(rest, archiveEnd)
	updated := before + archiveStart + "\n      " + cards + "\n      " + archiveEnd + after

	if err := os.WriteFile(b.indexPath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to write archive index: %w", err)
	}
	return nil
}

func buildArchiveCard(issue Issue) string {
	topic := strings.Join(topTags(issue.Notes, 3), ", ")
	if topic == "" {
		topic = "Agent RL, Scaling RL"
	}

	return fmt.Sprintf(`<a class="issue-card" href="issues/%s/index.html">`+
		`<div class="issue-date">%s</div>`+
		`<p class="issue-count">%d papers</p>`+
		`<p class="issue-topic">Top topics: %s</p>`+
		`</a>`,
		issue.Date, html.EscapeString(issue.Date), len(issue.Notes), html.EscapeString(topic))
}
