package snapshot

import (
	"fmt"
	"strings"
)

// RenderMarkdown produces the human-readable snapshot document: four headed
// sections with a fixed fallback line whenever a section is empty.
func RenderMarkdown(date string, influencers []Post, topics []TopicSummary, viewpoints, followups []string) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# X Daily Snapshot (%s)", date))
	lines = append(lines, "")

	lines = append(lines, "## 热门博主动态")
	for _, post := range influencers {
		lines = append(lines, fmt.Sprintf("- @%s | %s (score=%v, %s)",
			post.Handle, Truncate(post.Text, 160), post.Score, post.URL))
	}
	if len(influencers) == 0 {
		lines = append(lines, "- 暂无数据")
	}

	lines = append(lines, "")
	lines = append(lines, "## 热门话题")
	for _, topic := range topics {
		lines = append(lines, fmt.Sprintf("- %s (热度=%v): %s", topic.Query, topic.Score, topic.LeadText))
	}
	if len(topics) == 0 {
		lines = append(lines, "- 暂无数据")
	}

	lines = append(lines, "")
	lines = append(lines, "## 今日关键观点")
	for _, item := range viewpoints {
		lines = append(lines, "- "+item)
	}
	if len(viewpoints) == 0 {
		lines = append(lines, "- 暂无观点")
	}

	lines = append(lines, "")
	lines = append(lines, "## 可跟进线索")
	for _, item := range followups {
		lines = append(lines, "- "+item)
	}
	if len(followups) == 0 {
		lines = append(lines, "- 暂无线索")
	}

	return strings.Join(lines, "\n") + "\n"
}
