package snapshot

import (
	"math"
	"testing"
)

func TestRanker_Run_DescendingStable(t *testing.T) {
	ranker := NewRanker()

	posts := []Post{
		{ID: "a", Score: 1.0},
		{ID: "b", Score: 3.0},
		{ID: "c", Score: 3.0},
		{ID: "d", Score: 2.0},
	}

	ranked := ranker.Run(posts)

	if len(ranked) != 4 {
		t.Fatalf("Expected 4 posts, got %d", len(ranked))
	}

	order := []string{"b", "c", "d", "a"}
	for i, id := range order {
		if ranked[i].ID != id {
			t.Errorf("Position %d: expected '%s', got '%s'", i, id, ranked[i].ID)
		}
	}

	// Input must stay untouched
	if posts[0].ID != "a" {
		t.Errorf("Expected input slice unchanged, got '%s' first", posts[0].ID)
	}
}

func TestRanker_SummarizeTopics_Buckets(t *testing.T) {
	ranker := NewRanker()

	posts := []Post{
		{ID: "1", Handle: "x", Query: "agents", Text: "agent post one", Score: 5.0, URL: "https://x.com/1"},
		{ID: "2", Handle: "y", Query: "scaling", Text: "scaling post", Score: 4.0, URL: "https://x.com/2"},
		{ID: "3", Handle: "z", Query: "agents", Text: "agent post two", Score: 8.0, URL: "https://x.com/3"},
	}

	summaries := ranker.SummarizeTopics(posts, 10)

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 topic summaries, got %d", len(summaries))
	}

	// agents bucket sums to 13 and sorts first
	if summaries[0].Query != "agents" {
		t.Errorf("Expected 'agents' first, got '%s'", summaries[0].Query)
	}
	if summaries[0].Count != 2 {
		t.Errorf("Expected count 2, got %d", summaries[0].Count)
	}
	if math.Abs(summaries[0].Score-13.0) > 1e-9 {
		t.Errorf("Expected summed score 13.0, got %v", summaries[0].Score)
	}

	// The lead is the bucket's own maximum, not the first member
	if summaries[0].LeadHandle != "z" {
		t.Errorf("Expected lead handle 'z', got '%s'", summaries[0].LeadHandle)
	}
	if summaries[0].LeadText != "agent post two" {
		t.Errorf("Expected lead text from highest scorer, got '%s'", summaries[0].LeadText)
	}
	if summaries[0].LeadURL != "https://x.com/3" {
		t.Errorf("Expected lead URL from highest scorer, got '%s'", summaries[0].LeadURL)
	}
}

func TestRanker_SummarizeTopics_TieKeepsFirst(t *testing.T) {
	ranker := NewRanker()

	posts := []Post{
		{ID: "1", Handle: "first", Query: "q", Text: "first post", Score: 5.0},
		{ID: "2", Handle: "second", Query: "q", Text: "second post", Score: 5.0},
	}

	summaries := ranker.SummarizeTopics(posts, 10)

	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].LeadHandle != "first" {
		t.Errorf("Expected tie to keep the earlier post as lead, got '%s'", summaries[0].LeadHandle)
	}
}

func TestRanker_SummarizeTopics_MissingQueryBecomesOther(t *testing.T) {
	ranker := NewRanker()

	posts := []Post{
		{ID: "1", Handle: "a", Text: "no query here", Score: 1.0},
	}

	summaries := ranker.SummarizeTopics(posts, 10)

	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Query != "Other" {
		t.Errorf("Expected missing query bucketed as 'Other', got '%s'", summaries[0].Query)
	}
}

func TestRanker_SummarizeTopics_TruncatesToTopN(t *testing.T) {
	ranker := NewRanker()

	posts := []Post{
		{ID: "1", Query: "a", Score: 3.0},
		{ID: "2", Query: "b", Score: 2.0},
		{ID: "3", Query: "c", Score: 1.0},
	}

	summaries := ranker.SummarizeTopics(posts, 2)

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries after truncation, got %d", len(summaries))
	}
	if summaries[0].Query != "a" || summaries[1].Query != "b" {
		t.Errorf("Expected top buckets 'a' and 'b', got '%s' and '%s'", summaries[0].Query, summaries[1].Query)
	}
}
