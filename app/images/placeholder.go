package images

import (
	"fmt"
	"html"
	"strings"
)

// BuildPlaceholder renders a 1200x630 SVG stand-in used when no og:image
// can be fetched for a paper page.
func BuildPlaceholder(title string) string {
	safeTitle := html.EscapeString(shorten(title, 70))

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="630" viewBox="0 0 1200 630">
  <defs>
    <linearGradient id="bg" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0%%" stop-color="#1a1a18"/>
      <stop offset="100%%" stop-color="#2b2b28"/>
    </linearGradient>
  </defs>
  <rect width="1200" height="630" fill="url(#bg)"/>
  <rect x="50" y="50" width="1100" height="530" rx="18" fill="none" stroke="#8f8f89" stroke-width="2"/>
  <text x="90" y="150" font-family="-apple-system,BlinkMacSystemFont,Segoe UI,Arial,sans-serif" font-size="30" fill="#e8e8e2">AI Daily Fallback Figure</text>
  <text x="90" y="220" font-family="-apple-system,BlinkMacSystemFont,Segoe UI,Arial,sans-serif" font-size="24" fill="#d1d1cb">%s</text>
  <text x="90" y="560" font-family="-apple-system,BlinkMacSystemFont,Segoe UI,Arial,sans-serif" font-size="18" fill="#b0b0aa">Generated placeholder when HF og:image metadata is unavailable.</text>
</svg>
`, safeTitle)
}

// shorten truncates on a word boundary with a "..." placeholder, keeping
// the result within width runes.
func shorten(text string, width int) string {
	compact := strings.Join(strings.Fields(text), " ")
	if len([]rune(compact)) <= width {
		return compact
	}

	const placeholder = "..."
	budget := width - len(placeholder)
	words := strings.Fields(compact)

	out := ""
	for _, word := range words {
		candidate := word
		if out != "" {
			candidate = out + " " + word
		}
		if len([]rune(candidate)) > budget {
			break
		}
		out = candidate
	}

	if out == "" {
		runes := []rune(compact)
		out = string(runes[:budget])
	}
	return out + placeholder
}
