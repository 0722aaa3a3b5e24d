package images

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractMetaImage(t *testing.T) {
	page := `<html><head>
		<meta property="og:image" content="/images/preview.png">
		<meta name="twitter:image" content="https://cdn.example.com/alt.png">
	</head><body></body></html>`

	got := extractMetaImage(page, "https://example.com/papers/2511.00001")

	if got != "https://example.com/images/preview.png" {
		t.Errorf("Expected og:image resolved against page URL, got '%s'", got)
	}
}

func TestExtractMetaImage_TwitterFallback(t *testing.T) {
	page := `<html><head>
		<meta name="twitter:image" content="https://cdn.example.com/alt.png">
	</head><body></body></html>`

	got := extractMetaImage(page, "https://example.com/p")

	if got != "https://cdn.example.com/alt.png" {
		t.Errorf("Expected twitter:image fallback, got '%s'", got)
	}
}

func TestExtractMetaImage_NoImage(t *testing.T) {
	if got := extractMetaImage("<html><head></head></html>", "https://example.com"); got != "" {
		t.Errorf("Expected empty result, got '%s'", got)
	}
}

func TestResolveURL(t *testing.T) {
	got := resolveURL("https://example.com/papers/x", "../img/a.png")

	if got != "https://example.com/img/a.png" {
		t.Errorf("Expected relative URL resolved, got '%s'", got)
	}
}

func TestFetcher_ProcessIssue_PlaceholderFallback(t *testing.T) {
	issueDir := t.TempDir()
	papersDir := filepath.Join(issueDir, "papers")
	if err := os.MkdirAll(papersDir, 0755); err != nil {
		t.Fatal(err)
	}

	// A note without a link always falls back to the placeholder
	note := "---\ntitle: Linkless Paper\n---\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(papersDir, "linkless-paper.md"), []byte(note), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := NewFetcher("test-agent")
	manifest, err := fetcher.ProcessIssue(context.Background(), issueDir)
	if err != nil {
		t.Fatal(err)
	}

	if len(manifest.Papers) != 1 {
		t.Fatalf("Expected 1 manifest entry, got %d", len(manifest.Papers))
	}

	entry := manifest.Papers["linkless-paper"]
	if entry.Source != "generated_placeholder" {
		t.Errorf("Expected placeholder source, got '%s'", entry.Source)
	}
	if !strings.HasSuffix(entry.StoredPath, ".svg") {
		t.Errorf("Expected stored SVG path, got '%s'", entry.StoredPath)
	}

	if _, err := os.Stat(filepath.Join(issueDir, filepath.FromSlash(entry.StoredPath))); err != nil {
		t.Errorf("Expected placeholder file on disk: %v", err)
	}

	loaded, err := LoadManifest(issueDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Papers) != 1 {
		t.Errorf("Expected manifest round-trip, got %d entries", len(loaded.Papers))
	}
}

func TestFetcher_ProcessIssue_DownloadsOGImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/preview.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("not really a png"))
		default:
			fmt.Fprintf(w, `<html><head><meta property="og:image" content="%s/preview.png"></head><body><p>page</p></body></html>`,
				"http://"+r.Host)
		}
	}))
	defer server.Close()

	issueDir := t.TempDir()
	papersDir := filepath.Join(issueDir, "papers")
	if err := os.MkdirAll(papersDir, 0755); err != nil {
		t.Fatal(err)
	}

	note := fmt.Sprintf("---\ntitle: Linked Paper\nlink: %s/page\n---\n\nBody.\n", server.URL)
	if err := os.WriteFile(filepath.Join(papersDir, "linked-paper.md"), []byte(note), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := NewFetcher("test-agent")
	manifest, err := fetcher.ProcessIssue(context.Background(), issueDir)
	if err != nil {
		t.Fatal(err)
	}

	entry := manifest.Papers["linked-paper"]
	if entry.Source != "hf_og_image" {
		t.Errorf("Expected og image source, got '%s'", entry.Source)
	}
	if !strings.HasSuffix(entry.StoredPath, ".png") {
		t.Errorf("Expected png extension from content type, got '%s'", entry.StoredPath)
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	manifest, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if manifest.Papers == nil || len(manifest.Papers) != 0 {
		t.Errorf("Expected empty manifest for missing file, got %v", manifest.Papers)
	}
}
