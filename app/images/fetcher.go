package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/syeehyn/ai-daily/app/papers"
)

const maxImageBytes = 8 << 20

var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/avif":    ".avif",
}

// Fetcher downloads paper preview images for an issue: og:image from the
// Hugging Face paper page when it resolves, a generated SVG placeholder
// otherwise. Network failures fall back, they never abort the issue.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

func NewFetcher(userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 25 * time.Second},
		userAgent:  userAgent,
	}
}

// ProcessIssue fetches one image per note under issueDir/papers and writes
// assets/figures/manifest.json describing the result.
func (f *Fetcher) ProcessIssue(ctx context.Context, issueDir string) (*Manifest, error) {
	notes, err := papers.LoadDir(filepath.Join(issueDir, "papers"))
	if err != nil {
		return nil, err
	}

	figuresDir := filepath.Join(issueDir, "assets", "figures")
	if err := os.MkdirAll(figuresDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create figures dir: %w", err)
	}

	manifest := &Manifest{
		IssueDate:   filepath.Base(issueDir),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Strategy: []string{
			"Try Hugging Face paper page og:image / metadata",
			"Fallback to generated placeholder thumb",
		},
		Papers: make(map[string]ManifestEntry, len(notes)),
	}

	for _, note := range notes {
		paperID := papers.ExtractPaperID(note.ID, note.Link, note.Body)
		if paperID == "" {
			paperID = note.ID
		}

		entry := ManifestEntry{
			PaperID:   paperID,
			PaperFile: filepath.Base(note.Path),
			Source:    "placeholder",
			HFPageURL: note.Link,
		}

		var storedPath string
		if note.Link != "" {
			storedPath = f.fetchPreview(ctx, note.Link, filepath.Join(figuresDir, paperID), &entry)
		}

		if storedPath == "" {
			storedPath = filepath.Join(figuresDir, paperID+".svg")
			if err := os.WriteFile(storedPath, []byte(BuildPlaceholder(note.Title)), 0o644); err != nil {
				return nil, fmt.Errorf("failed to write placeholder: %w", err)
			}
			entry.Source = "generated_placeholder"
		}

		rel, err := filepath.Rel(issueDir, storedPath)
		if err != nil {
			return nil, fmt.Errorf("failed to relativize stored path: %w", err)
		}
		entry.StoredPath = filepath.ToSlash(rel)
		manifest.Papers[paperID] = entry
	}

	if err := writeManifest(figuresDir, manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}

// fetchPreview returns the stored image path, or "" when the page gave no
// usable image and the caller should fall back to a placeholder.
func (f *Fetcher) fetchPreview(ctx context.Context, pageURL, outputBase string, entry *ManifestEntry) string {
	pageHTML, err := f.requestText(ctx, pageURL)
	if err != nil {
		slog.Warn("Failed to fetch paper page", "url", pageURL, "error", err)
		return ""
	}

	if excerpt := extractExcerpt(pageHTML, pageURL); excerpt != "" {
		entry.Excerpt = excerpt
	}

	imageURL := extractMetaImage(pageHTML, pageURL)
	if imageURL == "" {
		return ""
	}
	entry.ImageURL = imageURL

	storedPath, err := f.downloadImage(ctx, imageURL, outputBase)
	if err != nil {
		slog.Warn("Failed to download preview image", "url", imageURL, "error", err)
		return ""
	}
	if storedPath != "" {
		entry.Source = "hf_og_image"
	}
	return storedPath
}

func (f *Fetcher) requestText(ctx context.Context, requestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(data), nil
}

// downloadImage stores the image next to outputBase with an extension
// derived from the Content-Type. Non-image responses yield "" so the
// placeholder path kicks in.
func (f *Fetcher) downloadImage(ctx context.Context, imageURL, outputBase string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0]))
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	ext := imageExtensions[contentType]
	if ext == "" {
		if parsed, err := url.Parse(imageURL); err == nil {
			ext = filepath.Ext(parsed.Path)
		}
	}
	if ext == "" {
		ext = ".img"
	}

	out := outputBase + ext
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return out, nil
}

// extractMetaImage pulls the og:image (or twitter:image) URL out of the
// page, resolved against the page URL.
func extractMetaImage(pageHTML, baseURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return ""
	}

	selectors := []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
	}

	for _, selector := range selectors {
		content, ok := doc.Find(selector).First().Attr("content")
		if !ok || strings.TrimSpace(content) == "" {
			continue
		}
		return resolveURL(baseURL, strings.TrimSpace(content))
	}
	return ""
}

func extractExcerpt(pageHTML, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = nil
	}

	article, err := readability.FromReader(strings.NewReader(pageHTML), parsed)
	if err != nil {
		return ""
	}

	excerpt := strings.Join(strings.Fields(article.Excerpt), " ")
	runes := []rune(excerpt)
	if len(runes) > 280 {
		excerpt = strings.TrimRight(string(runes[:279]), " ") + "…"
	}
	return excerpt
}

func resolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

func writeManifest(figuresDir string, manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(figuresDir, "manifest.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads an issue's figures manifest; a missing manifest is an
// empty one.
func LoadManifest(issueDir string) (*Manifest, error) {
	path := filepath.Join(issueDir, "assets", "figures", "manifest.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{Papers: map[string]ManifestEntry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if manifest.Papers == nil {
		manifest.Papers = map[string]ManifestEntry{}
	}
	return &manifest, nil
}

// SortedPaperIDs gives deterministic iteration order over manifest entries.
func (m *Manifest) SortedPaperIDs() []string {
	ids := make([]string, 0, len(m.Papers))
	for id := range m.Papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
