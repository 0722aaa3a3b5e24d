package papers

import (
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
)

func TestBuildInsights_FromSections(t *testing.T) {
	sections := []*section{
		{heading: "一句话总结", lines: []string{"规模化智能体 RL 依然有效。"}},
		{heading: "关键创新", lines: []string{"- 轨迹级奖励", "- 自动构造可验证奖励"}},
		{heading: "主要结果", lines: []string{"- 基准成绩提升 12%"}},
		{heading: "要点总结", lines: []string{"- 奖励设计是瓶颈"}},
	}

	insights := buildInsights("fallback summary", "body", sections, []string{"Agent", "RL"})

	if len(insights) == 0 || len(insights) > 5 {
		t.Fatalf("Expected 1..5 insights, got %d", len(insights))
	}

	if !strings.HasPrefix(insights[0], "问题：") {
		t.Errorf("Expected first insight labeled 问题, got '%s'", insights[0])
	}
	if !strings.HasPrefix(insights[1], "方法：") {
		t.Errorf("Expected second insight labeled 方法, got '%s'", insights[1])
	}
	if !strings.Contains(insights[1], "轨迹级奖励") {
		t.Errorf("Expected innovation bullet in 方法 insight, got '%s'", insights[1])
	}
}

func TestBuildInsights_SummaryFallback(t *testing.T) {
	insights := buildInsights("the only available summary", "some body text", nil, nil)

	if len(insights) < 3 {
		t.Fatalf("Expected at least 3 insights via fallbacks, got %d", len(insights))
	}
	if !strings.Contains(insights[0], "the only available summary") {
		t.Errorf("Expected summary used as 问题, got '%s'", insights[0])
	}

	foundMeaning := false
	for _, insight := range insights {
		if strings.HasPrefix(insight, "意义：") {
			foundMeaning = true
		}
	}
	if !foundMeaning {
		t.Errorf("Expected a 意义 insight even without sections, got %v", insights)
	}
}

func TestExtractBullets_SkipsLabelLines(t *testing.T) {
	lines := []string{
		"- 这是标签：",
		"- real bullet one",
		"1. numbered bullet",
		"- real bullet two",
	}

	bullets := extractBullets(lines, 2)

	if len(bullets) != 2 {
		t.Fatalf("Expected 2 bullets, got %v", bullets)
	}
	if bullets[0] != "real bullet one" {
		t.Errorf("Expected colon-terminated label skipped, got '%s'", bullets[0])
	}
	if bullets[1] != "numbered bullet" {
		t.Errorf("Expected numbered entry collected, got '%s'", bullets[1])
	}
}

func TestNoteFilename(t *testing.T) {
	withID := noteFilename(&gofeed.Item{Link: "https://huggingface.co/papers/2511.04321", Title: "Some Paper"})
	if withID != "2511.04321.md" {
		t.Errorf("Expected paper id filename, got '%s'", withID)
	}

	withoutID := noteFilename(&gofeed.Item{Title: "An Agentic RL Survey!"})
	if withoutID != "an-agentic-rl-survey.md" {
		t.Errorf("Expected slug filename, got '%s'", withoutID)
	}
}

func TestSlugify(t *testing.T) {
	if got := slugify("Hello, World! 42"); got != "hello-world-42" {
		t.Errorf("Expected 'hello-world-42', got '%s'", got)
	}
	if got := slugify("!!!"); got != "untitled" {
		t.Errorf("Expected 'untitled' for symbol-only title, got '%s'", got)
	}
}
