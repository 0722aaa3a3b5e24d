package site

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	inlineCodeRe   = regexp.MustCompile("`([^`]+)`")
	inlineStrongRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineEmRe     = regexp.MustCompile(`\*([^*]+)\*`)
	autolinkRe     = regexp.MustCompile(`https?://[^\s<]+`)
)

// inlineHTML escapes a text line, then applies inline code, bold, emphasis
// and autolinking. Escaping comes first so the markup regexes run over
// already-safe text.
func inlineHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = inlineCodeRe.ReplaceAllString(escaped, "<code>$1</code>")
	escaped = inlineStrongRe.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = inlineEmRe.ReplaceAllString(escaped, "<em>$1</em>")
	escaped = autolinkRe.ReplaceAllStringFunc(escaped, func(match string) string {
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">%s</a>`, match, match)
	})
	return escaped
}

// markdownToHTML is a deliberately small line-based converter for the
// snapshot documents: "## " headings become h3, bullets become lists,
// anything else a paragraph. Top-level "# " titles are dropped because the
// page supplies its own.
func markdownToHTML(markdown string) string {
	var htmlLines []string
	inList := false

	closeList := func() {
		if inList {
			htmlLines = append(htmlLines, "</ul>")
			inList = false
		}
	}

	for _, raw := range strings.Split(markdown, "\n") {
		stripped := strings.TrimSpace(raw)
		if stripped == "" {
			closeList()
			continue
		}
		if strings.HasPrefix(stripped, "# ") {
			continue
		}
		if strings.HasPrefix(stripped, "## ") {
			closeList()
			htmlLines = append(htmlLines, "<h3>"+inlineHTML(strings.TrimSpace(stripped[3:]))+"</h3>")
			continue
		}
		if strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* ") {
			if !inList {
				htmlLines = append(htmlLines, "<ul>")
				inList = true
			}
			htmlLines = append(htmlLines, "<li>"+inlineHTML(strings.TrimSpace(stripped[2:]))+"</li>")
			continue
		}
		closeList()
		htmlLines = append(htmlLines, "<p>"+inlineHTML(stripped)+"</p>")
	}

	closeList()
	return strings.Join(htmlLines, "")
}

// replaceTokens substitutes {{KEY}} tokens in the page template.
func replaceTokens(template string, values map[string]string) string {
	rendered := template
	for key, value := range values {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", value)
	}
	return rendered
}
