package papers

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	paperIDRe = regexp.MustCompile(`(\d{4}\.\d{4,5}(?:v\d+)?)`)
	urlRe     = regexp.MustCompile(`https?://[^\s)>"]+`)

	mdLinkRe   = regexp.MustCompile(`\[(.*?)\]\([^)]+\)`)
	mdStrongRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdEmRe     = regexp.MustCompile(`\*(.*?)\*`)
	mdCodeRe   = regexp.MustCompile("`(.*?)`")
	spaceRe    = regexp.MustCompile(`\s+`)
	orderedRe  = regexp.MustCompile(`^\d+\.\s+`)
)

// ParseNote reads one markdown paper note and extracts the fields the site
// builder needs, with the same fallback chain for every field: front matter
// first, then body scanning, then a generated default.
func ParseNote(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}

	front, body := ParseFrontMatter(string(data))
	lines := strings.Split(body, "\n")
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	title := stripWrappingQuotes(front["title"])
	if title == "" {
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				title = strings.TrimSpace(strings.TrimLeft(line, "# "))
				break
			}
		}
	}

	authors := stripWrappingQuotes(front["authors"])
	tagsRaw := strings.TrimSpace(front["tags"])
	link := strings.TrimSpace(firstNonEmpty(front["link"], front["url"]))
	summary := stripWrappingQuotes(firstNonEmpty(
		front["summary"], front["brief"], front["comment"], front["one_sentence_summary"]))

	sections := make([]*section, 0)
	var currentSection *section

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.TrimSpace(strings.Join(current, " ")))
			current = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		if strings.HasPrefix(line, "## ") {
			heading := strings.ToLower(CleanMarkdownText(strings.TrimSpace(line[3:])))
			currentSection = &section{heading: heading}
			sections = append(sections, currentSection)
			continue
		}
		if currentSection != nil {
			currentSection.lines = append(currentSection.lines, line)
		}

		if line == "" {
			flush()
			continue
		}

		if strings.HasPrefix(lower, "authors:") && authors == "" {
			authors = stripWrappingQuotes(strings.TrimSpace(line[len("authors:"):]))
			continue
		}
		if strings.HasPrefix(lower, "tags:") && tagsRaw == "" {
			tagsRaw = strings.TrimSpace(line[len("tags:"):])
			continue
		}
		if strings.HasPrefix(lower, "link:") && link == "" {
			link = stripWrappingQuotes(strings.TrimSpace(line[len("link:"):]))
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		if summary == "" && (strings.HasPrefix(lower, "summary:") || strings.HasPrefix(lower, "brief:")) {
			_, value, _ := strings.Cut(line, ":")
			summary = stripWrappingQuotes(strings.TrimSpace(value))
			continue
		}

		current = append(current, line)
	}
	flush()

	if summary == "" && len(paragraphs) > 0 {
		summary = paragraphs[0]
	}

	if link == "" {
		link = urlRe.FindString(body)
	}
	link = BuildPaperLink(stem, link, body)

	if title == "" {
		title = titleFromStem(stem)
	}
	if authors == "" {
		authors = "Unknown authors"
	}
	if summary == "" {
		summary = "No summary provided yet."
	}

	tags := parseTags(tagsRaw)
	if len(tags) == 0 {
		tags = inferTags(strings.Join([]string{title, summary, body}, " "))
	}

	return &Note{
		ID:       stem,
		Title:    title,
		Authors:  authors,
		Summary:  summary,
		Insights: buildInsights(summary, body, sections, tags),
		Tags:     tags,
		Link:     link,
		Body:     body,
		Path:     path,
	}, nil
}

// ParseFrontMatter splits a "---" fenced key: value header from the body.
// Without a closing fence the whole text is treated as body.
func ParseFrontMatter(text string) (map[string]string, string) {
	front := make(map[string]string)
	if !strings.HasPrefix(text, "---\n") {
		return front, text
	}

	lines := strings.Split(text, "\n")
	end := -1
	for idx := 1; idx < len(lines); idx++ {
		line := strings.TrimSpace(lines[idx])
		if line == "---" {
			end = idx
			break
		}
		if key, value, ok := strings.Cut(line, ":"); ok {
			front[strings.ToLower(strings.TrimSpace(key))] = stripWrappingQuotes(strings.TrimSpace(value))
		}
	}

	if end < 0 {
		return map[string]string{}, text
	}

	return front, strings.Join(lines[end+1:], "\n")
}

// ExtractPaperID finds the first arXiv-style paper id in any of the given
// values.
func ExtractPaperID(values ...string) string {
	for _, value := range values {
		if match := paperIDRe.FindString(value); match != "" {
			return match
		}
	}
	return ""
}

// BuildPaperLink prefers a canonical Hugging Face papers URL derived from
// the paper id, falling back to whatever link the note carries.
func BuildPaperLink(stem, rawLink, body string) string {
	cleaned := stripWrappingQuotes(rawLink)
	if paperID := ExtractPaperID(stem, cleaned, body); paperID != "" {
		return "https://huggingface.co/papers/" + paperID
	}
	return cleaned
}

// CleanMarkdownText strips inline markdown markup and collapses whitespace.
func CleanMarkdownText(text string) string {
	text = stripWrappingQuotes(text)
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = mdStrongRe.ReplaceAllString(text, "$1")
	text = mdEmRe.ReplaceAllString(text, "$1")
	text = mdCodeRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// SafeExcerpt cleans markdown and truncates to maxLen runes with a trailing
// ellipsis.
func SafeExcerpt(text string, maxLen int) string {
	cleaned := CleanMarkdownText(text)
	runes := []rune(cleaned)
	if len(runes) <= maxLen {
		return cleaned
	}
	return strings.TrimRight(string(runes[:maxLen-1]), " ") + "…"
}

func stripWrappingQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == value[len(value)-1] && (value[0] == '"' || value[0] == '\'') {
		return strings.TrimSpace(value[1 : len(value)-1])
	}
	return value
}

func parseTags(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), "[]")
	if raw == "" {
		return nil
	}

	var items []string
	if strings.Contains(raw, ",") {
		items = strings.Split(raw, ",")
	} else {
		items = strings.Fields(raw)
	}

	tags := make([]string, 0, len(items))
	for _, item := range items {
		if tag := stripWrappingQuotes(strings.TrimSpace(item)); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// inferTags derives up to four tags from keyword hits when the note itself
// carries none. Order follows the mapping below, not text order.
func inferTags(text string) []string {
	lower := strings.ToLower(text)

	mapping := []struct {
		keyword string
		label   string
	}{
		{"agent", "Agent"},
		{"rl", "RL"},
		{"scaling", "Scaling"},
		{"llm", "LLM"},
		{"benchmark", "Benchmark"},
		{"multimodal", "Multimodal"},
		{"tool", "Tool-use"},
		{"reason", "Reasoning"},
	}

	var tags []string
	for _, entry := range mapping {
		if strings.Contains(lower, entry.keyword) {
			tags = append(tags, entry.label)
			if len(tags) == 4 {
				break
			}
		}
	}
	return tags
}

func titleFromStem(stem string) string {
	words := strings.Split(strings.ReplaceAll(stem, "-", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
