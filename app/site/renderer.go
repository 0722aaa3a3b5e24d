package site

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/syeehyn/ai-daily/app/papers"
	"github.com/syeehyn/ai-daily/app/snapshot"
)

// focusKeywords select papers for the Agent RL / Scaling RL radar section.
var focusKeywords = []string{
	"agent rl", "scaling rl", "rl", "rlvr", "grpo", "multi-agent", "tool-use", "reinforcement learning",
}

func renderIssuePage(date string, notes []*papers.Note, template, snapshotHTML string) string {
	topNotes := notes
	if len(topNotes) > 10 {
		topNotes = topNotes[:10]
	}

	var cards strings.Builder
	for idx, note := range topNotes {
		cards.WriteString(buildPaperCard(note, idx+1))
	}
	cardsHTML := cards.String()
	if cardsHTML == "" {
		cardsHTML = `<div class="takeaway">No papers found for this date.</div>`
	}

	return replaceTokens(template, map[string]string{
		"PAGE_TITLE":       "AI Daily " + date,
		"DATE":             date,
		"PAPER_COUNT":      strconv.Itoa(len(notes)),
		"TAGLINE":          "Frontier AI Papers, Curated as an Editorial Daily Brief",
		"TOP_PAPERS":       cardsHTML,
		"X_DAILY_SNAPSHOT": snapshotHTML,
		"FOCUS_AREA":       buildFocusSection(topNotes),
		"TAKEAWAYS":        buildTakeaways(topNotes),
	})
}

func buildPaperCard(note *papers.Note, rank int) string {
	var tags strings.Builder
	for _, tag := range note.Tags {
		tags.WriteString(`<span class="tag">` + html.EscapeString(tag) + `</span>`)
	}

	var insights strings.Builder
	for i, item := range note.Insights {
		if i >= 5 {
			break
		}
		insights.WriteString("<li>" + html.EscapeString(item) + "</li>")
	}

	linkHTML := `<p class="paper-link"><span class="paper-authors">Link pending</span></p>`
	if link := strings.TrimSpace(note.Link); link != "" {
		linkHTML = fmt.Sprintf(
			`<p class="paper-link"><a href="%s" target="_blank" rel="noopener">Open on Hugging Face Papers</a></p>`,
			html.EscapeString(link))
	}

	return `<article class="paper-card" aria-label="paper-entry">` +
		`<header class="paper-header">` +
		fmt.Sprintf(`<div class="paper-rank">Paper %02d</div>`, rank) +
		`<h3 class="paper-title">` + html.EscapeString(note.Title) + `</h3>` +
		`</header>` +
		`<p class="paper-authors">` + html.EscapeString(note.Authors) + `</p>` +
		`<p class="paper-brief">` + html.EscapeString(papers.SafeExcerpt(note.Summary, 240)) + `</p>` +
		`<ul class="paper-insights">` + insights.String() + `</ul>` +
		`<div class="tags">` + tags.String() + `</div>` +
		linkHTML +
		`</article>`
}

func isFocusNote(note *papers.Note) bool {
	text := strings.ToLower(strings.Join([]string{
		note.Title, note.Summary, strings.Join(note.Tags, " "),
	}, " "))

	for _, keyword := range focusKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func buildFocusSection(notes []*papers.Note) string {
	var focus []*papers.Note
	for _, note := range notes {
		if isFocusNote(note) {
			focus = append(focus, note)
		}
	}

	if len(focus) == 0 {
		return `<h3 class="focus-title">Agent RL / Scaling RL Radar</h3>` +
			"<p>今天的 Top 10 中尚未出现强匹配焦点论文，建议继续关注 RLVR 与多智能体协同方向。</p>"
	}

	if len(focus) > 3 {
		focus = focus[:3]
	}

	var bullets strings.Builder
	for _, note := range focus {
		bullets.WriteString("<li><strong>" + html.EscapeString(note.Title) + "</strong>: " +
			html.EscapeString(papers.SafeExcerpt(note.Summary, 120)) + "</li>")
	}

	return `<h3 class="focus-title">Agent RL / Scaling RL Deep Dive</h3>` +
		"<p>以下论文与 Agent RL / Scaling RL 相关，适合优先精读并跟踪可复现价值。</p>" +
		"<ul>" + bullets.String() + "</ul>"
}

func buildTakeaways(notes []*papers.Note) string {
	if len(notes) == 0 {
		return "<p>暂无论文数据。</p>"
	}

	tags := topTags(notes, 3)
	topic := strings.Join(tags, ", ")
	if topic == "" {
		topic = "Agent / RL / LLM"
	}

	items := []string{
		fmt.Sprintf("<li>今日共筛选 <strong>%d</strong> 篇论文，建议先读 TOP 3 获取全局脉络。</li>", len(notes)),
		"<li>高频主题：<strong>" + html.EscapeString(topic) + "</strong>。</li>",
		"<li>第一优先论文：<strong>" + html.EscapeString(notes[0].Title) + "</strong>。</li>",
	}
	return "<ul>" + strings.Join(items, "") + "</ul>"
}

// topTags counts tag frequencies across notes, ranking by count with
// first-seen order breaking ties.
func topTags(notes []*papers.Note, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, note := range notes {
		for _, tag := range note.Tags {
			if _, ok := counts[tag]; !ok {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// renderSnapshotJSON renders the snapshot payload's four sections when no
// markdown rendering is available, capping each list at eight items.
func renderSnapshotJSON(payload *snapshot.Snapshot) string {
	var block strings.Builder
	block.WriteString(`<section class="x-snapshot"><h2 class="section-title">X Daily Snapshot</h2><article class="x-snapshot-card">`)

	writeList := func(title string, items []string) {
		block.WriteString("<h3>" + html.EscapeString(title) + "</h3><ul>")
		if len(items) == 0 {
			block.WriteString("<li>暂无数据</li>")
		}
		for i, item := range items {
			if i >= 8 {
				break
			}
			block.WriteString("<li>" + html.EscapeString(item) + "</li>")
		}
		block.WriteString("</ul>")
	}

	influencers := make([]string, 0, len(payload.Sections.InfluencerPosts))
	for _, post := range payload.Sections.InfluencerPosts {
		influencers = append(influencers, "@"+post.Handle+": "+post.Text)
	}
	topics := make([]string, 0, len(payload.Sections.TopicSummaries))
	for _, topic := range payload.Sections.TopicSummaries {
		topics = append(topics, "@"+topic.LeadHandle+": "+topic.LeadText)
	}

	writeList("热门博主动态", influencers)
	writeList("热门话题", topics)
	writeList("今日关键观点", payload.Sections.Viewpoints)
	writeList("可跟进线索", payload.Sections.FollowupLeads)

	block.WriteString("</article></section>")
	return block.String()
}
