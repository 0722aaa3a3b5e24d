package snapshot

import (
	"fmt"
	"strings"
)

// FallbackLead is emitted when no follow-up lead matches any keyword.
const FallbackLead = "暂未识别到高优先级线索，建议查看热门话题中的首条帖子。"

// ViewBuilder derives the bounded viewpoint and follow-up lists from an
// already-ranked post sequence.
type ViewBuilder struct {
	keywords []string
}

func NewViewBuilder(keywords []string) *ViewBuilder {
	return &ViewBuilder{keywords: keywords}
}

// Viewpoints scans at most 2*topN posts from the head of the list, formats
// each as "@handle: text" with the text truncated to 140 characters, and
// drops candidates whose text is a substring of any already-kept sentence.
// The containment check is deliberately loose, so this stays an explicit
// nested loop over a bounded candidate set.
func (b *ViewBuilder) Viewpoints(posts []Post, topN int) []string {
	limit := topN * 2
	if limit > len(posts) {
		limit = len(posts)
	}

	viewpoints := make([]string, 0, topN)
	for _, post := range posts[:limit] {
		text := Truncate(post.Text, 140)
		if text == "" {
			continue
		}

		redundant := false
		for _, existing := range viewpoints {
			if strings.Contains(existing, text) {
				redundant = true
				break
			}
		}
		if !redundant {
			viewpoints = append(viewpoints, fmt.Sprintf("@%s: %s", post.Handle, text))
		}

		if len(viewpoints) >= topN {
			break
		}
	}

	return viewpoints
}

// FollowupLeads keeps posts whose lowercased text contains any configured
// keyword, up to topN. A fixed fallback sentence stands in when nothing
// matches.
func (b *ViewBuilder) FollowupLeads(posts []Post, topN int) []string {
	leads := make([]string, 0, topN)

	for _, post := range posts {
		lower := strings.ToLower(post.Text)
		matched := false
		for _, keyword := range b.keywords {
			if keyword != "" && strings.Contains(lower, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		lead := fmt.Sprintf("跟进 @%s：%s", post.Handle, Truncate(post.Text, 120))
		if url := strings.TrimSpace(post.URL); url != "" {
			lead += fmt.Sprintf(" (%s)", url)
		}
		leads = append(leads, lead)

		if len(leads) >= topN {
			break
		}
	}

	if len(leads) == 0 {
		leads = append(leads, FallbackLead)
	}

	return leads
}

// Truncate collapses whitespace runs to single spaces, then cuts the text
// to limit characters with a single trailing ellipsis when it was longer.
// Lengths are measured in runes, not bytes.
func Truncate(text string, limit int) string {
	compact := strings.Join(strings.Fields(text), " ")

	runes := []rune(compact)
	if len(runes) <= limit {
		return compact
	}

	return strings.TrimRight(string(runes[:limit-1]), " ") + "…"
}
