package site

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML_Sections(t *testing.T) {
	markdown := `# Dropped Title

## 热门博主动态
- @sama | roadmap update (score=9.1, https://x.com/sama/status/2)
- @karpathy | scaling RL (score=7.3, https://x.com/karpathy/status/1)

A closing paragraph.
`

	html := markdownToHTML(markdown)

	if strings.Contains(html, "Dropped Title") {
		t.Errorf("Expected top-level title dropped, got:\n%s", html)
	}
	if !strings.Contains(html, "<h3>热门博主动态</h3>") {
		t.Errorf("Expected h3 heading, got:\n%s", html)
	}
	if strings.Count(html, "<li>") != 2 {
		t.Errorf("Expected 2 list items, got:\n%s", html)
	}
	if !strings.Contains(html, "<ul>") || !strings.Contains(html, "</ul>") {
		t.Errorf("Expected list wrapped in ul, got:\n%s", html)
	}
	if !strings.Contains(html, "<p>A closing paragraph.</p>") {
		t.Errorf("Expected trailing paragraph, got:\n%s", html)
	}
}

func TestMarkdownToHTML_EscapesHTML(t *testing.T) {
	html := markdownToHTML("a <script>alert(1)</script> line")

	if strings.Contains(html, "<script>") {
		t.Errorf("Expected HTML escaped, got:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("Expected escaped entity, got:\n%s", html)
	}
}

func TestInlineHTML_Markup(t *testing.T) {
	got := inlineHTML("**bold** and `code` at https://example.com/x")

	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("Expected bold markup, got '%s'", got)
	}
	if !strings.Contains(got, "<code>code</code>") {
		t.Errorf("Expected code markup, got '%s'", got)
	}
	if !strings.Contains(got, `<a href="https://example.com/x"`) {
		t.Errorf("Expected autolink, got '%s'", got)
	}
}

func TestReplaceTokens(t *testing.T) {
	template := "<title>{{PAGE_TITLE}}</title><p>{{DATE}}</p>{{MISSING}}"

	got := replaceTokens(template, map[string]string{
		"PAGE_TITLE": "AI Daily 2025-11-03",
		"DATE":       "2025-11-03",
	})

	if !strings.Contains(got, "<title>AI Daily 2025-11-03</title>") {
		t.Errorf("Expected title token replaced, got '%s'", got)
	}
	if !strings.Contains(got, "{{MISSING}}") {
		t.Errorf("Expected unknown tokens left intact, got '%s'", got)
	}
}
