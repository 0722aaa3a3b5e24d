package papers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// FeedImporter turns RSS/Atom feed entries into markdown paper notes so an
// issue can be seeded from a papers feed instead of hand-written files.
type FeedImporter struct {
	gofeedParser *gofeed.Parser
}

func NewFeedImporter() *FeedImporter {
	return &FeedImporter{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run fetches the feed and writes one note per entry into papersDir,
// capped at limit. Existing notes with the same filename are left alone so
// manual edits survive re-imports.
func (i *FeedImporter) Run(ctx context.Context, feedURL, papersDir string, limit int) (int, error) {
	feed, err := i.gofeedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch feed: %w", err)
	}

	if err := os.MkdirAll(papersDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create papers dir: %w", err)
	}

	written := 0
	for _, item := range feed.Items {
		if limit > 0 && written >= limit {
			break
		}

		name := noteFilename(item)
		path := filepath.Join(papersDir, name)
		if _, err := os.Stat(path); err == nil {
			slog.Debug("Note already exists, skipping", "note", name)
			continue
		}

		if err := os.WriteFile(path, []byte(renderNote(item)), 0o644); err != nil {
			return written, fmt.Errorf("failed to write note %s: %w", name, err)
		}
		written++
	}

	slog.Info("Imported feed entries", "feed", feedURL, "total", len(feed.Items), "written", written)
	return written, nil
}

func noteFilename(item *gofeed.Item) string {
	if paperID := ExtractPaperID(item.Link, item.GUID, item.Title); paperID != "" {
		return paperID + ".md"
	}
	return slugify(item.Title) + ".md"
}

func renderNote(item *gofeed.Item) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("title: " + strings.TrimSpace(item.Title) + "\n")
	if authors := feedAuthors(item); authors != "" {
		b.WriteString("authors: " + authors + "\n")
	}
	if item.Link != "" {
		b.WriteString("link: " + item.Link + "\n")
	}
	b.WriteString("---\n\n")

	body := strings.TrimSpace(item.Content)
	if body == "" {
		body = strings.TrimSpace(item.Description)
	}
	if body != "" {
		b.WriteString(CleanMarkdownText(body) + "\n")
	}

	return b.String()
}

func feedAuthors(item *gofeed.Item) string {
	var names []string
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			names = append(names, author.Name)
		}
	}
	return strings.Join(names, ", ")
}

func slugify(title string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}
