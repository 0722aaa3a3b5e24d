package papers

import "strings"

// buildInsights distills a note into at most five labeled takeaway lines
// (问题/方法/结果/意义/补充), working from the conventional note sections and
// falling back to the summary and body when a section is missing.
func buildInsights(summary, body string, sections []*section, tags []string) []string {
	oneSentenceLines := sectionContent(sections, []string{"一句话", "one sentence"})
	innovationLines := sectionContent(sections, []string{"关键创新", "innovation"})
	methodLines := sectionContent(sections, []string{"方法概述", "method"})
	resultLines := sectionContent(sections, []string{"主要结果", "result"})
	takeawayLines := sectionContent(sections, []string{"要点总结", "takeaway"})

	oneSentence := CleanMarkdownText(strings.Join(oneSentenceLines, " "))
	if oneSentence == "" {
		oneSentence = CleanMarkdownText(summary)
	}
	innovationBullets := extractBullets(innovationLines, 2)
	resultBullets := extractBullets(resultLines, 2)
	takeawayBullets := extractBullets(takeawayLines, 2)
	methodText := extractParagraph(methodLines)

	var insights []string
	if oneSentence != "" {
		insights = append(insights, buildInsight("问题", oneSentence))
	}

	if len(innovationBullets) > 0 {
		insights = append(insights, buildInsight("方法", strings.Join(innovationBullets, "；")))
	} else if methodText != "" {
		insights = append(insights, buildInsight("方法", methodText))
	}

	if len(resultBullets) > 0 {
		insights = append(insights, buildInsight("结果", strings.Join(resultBullets, "；")))
	} else if fallback := extractParagraph(resultLines); fallback != "" {
		insights = append(insights, buildInsight("结果", fallback))
	}

	if len(takeawayBullets) > 0 {
		insights = append(insights, buildInsight("意义", strings.Join(takeawayBullets, "；")))
	} else {
		focus := "前沿 Agent / RL 研究"
		if len(tags) > 0 {
			head := tags
			if len(head) > 3 {
				head = head[:3]
			}
			focus = strings.Join(head, "、")
		}
		insights = append(insights, buildInsight("意义", "该工作对 "+focus+" 方向具有直接参考价值。"))
	}

	supplements := make([]string, 0, len(innovationBullets)+len(takeawayBullets)+len(resultBullets))
	supplements = append(supplements, innovationBullets...)
	supplements = append(supplements, takeawayBullets...)
	supplements = append(supplements, resultBullets...)

	for _, item := range supplements {
		if len(insights) >= 5 {
			break
		}
		clean := CleanMarkdownText(item)
		if clean == "" {
			continue
		}
		redundant := false
		for _, existing := range insights {
			if strings.Contains(existing, clean) {
				redundant = true
				break
			}
		}
		if !redundant {
			insights = append(insights, buildInsight("补充", clean))
		}
	}

	if len(insights) < 3 {
		if fallback := SafeExcerpt(CleanMarkdownText(body), 160); fallback != "" {
			insights = append(insights, buildInsight("补充", fallback))
		}
	}

	if len(insights) > 5 {
		insights = insights[:5]
	}
	return insights
}

func buildInsight(label, text string) string {
	return label + "：" + SafeExcerpt(text, 170)
}

func sectionContent(sections []*section, keys []string) []string {
	var values []string
	for _, sec := range sections {
		for _, key := range keys {
			if strings.Contains(sec.heading, key) {
				values = append(values, sec.lines...)
				break
			}
		}
	}
	return values
}

// extractBullets collects up to maxItems bullet or numbered list entries,
// skipping bare label lines that end with a colon.
func extractBullets(lines []string, maxItems int) []string {
	var items []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var item string
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			item = CleanMarkdownText(line[2:])
		} else if orderedRe.MatchString(line) {
			item = CleanMarkdownText(orderedRe.ReplaceAllString(line, ""))
		}

		if item != "" && !strings.HasSuffix(item, "：") && !strings.HasSuffix(item, ":") {
			items = append(items, item)
		}
		if len(items) >= maxItems {
			break
		}
	}
	return items
}

func extractParagraph(lines []string) string {
	var parts []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "* ") {
			continue
		}
		parts = append(parts, CleanMarkdownText(line))
	}
	return SafeExcerpt(strings.Join(parts, " "), 170)
}
