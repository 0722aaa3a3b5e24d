package snapshot

import (
	"errors"
	"math"
	"testing"
	"time"
)

var scorerNow = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func TestScorer_Run_FreshPost(t *testing.T) {
	scorer := NewScorer(0.7, 0.3, scorerNow)

	posts := []Post{
		{
			CreatedAt: "2025-11-03T00:00:00Z",
			Metrics:   Metrics{LikeCount: 10},
		},
	}

	if err := scorer.Run(posts); err != nil {
		t.Fatal(err)
	}

	// 0.7*10 engagement + 0.3*1.0 recency at zero age
	expected := 7.3
	if math.Abs(posts[0].Score-expected) > 1e-9 {
		t.Errorf("Expected score %v, got %v", expected, posts[0].Score)
	}
}

func TestScorer_Run_AgedPost(t *testing.T) {
	scorer := NewScorer(0.7, 0.3, scorerNow)

	posts := []Post{
		{
			CreatedAt: "2025-11-01T00:00:00Z", // 48 hours old
			Metrics:   Metrics{LikeCount: 10},
		},
	}

	if err := scorer.Run(posts); err != nil {
		t.Fatal(err)
	}

	expected := 0.7*10 + 0.3*math.Exp(-2.0)
	if math.Abs(posts[0].Score-expected) > 1e-9 {
		t.Errorf("Expected score %v, got %v", expected, posts[0].Score)
	}
}

func TestScorer_Engagement_Weights(t *testing.T) {
	scorer := NewScorer(0.7, 0.3, scorerNow)

	m := Metrics{
		LikeCount:       100,
		RetweetCount:    50,
		ReplyCount:      20,
		QuoteCount:      10,
		BookmarkCount:   5,
		ImpressionCount: 10000,
	}

	// 100 + 2*50 + 1.5*20 + 1.2*10 + 0.8*5 + 10000/1000
	expected := 100.0 + 100.0 + 30.0 + 12.0 + 4.0 + 10.0
	got := scorer.Engagement(m)
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected engagement %v, got %v", expected, got)
	}
}

func TestScorer_Recency_FutureTimestampClamps(t *testing.T) {
	scorer := NewScorer(0.7, 0.3, scorerNow)

	recency, err := scorer.Recency("2025-11-04T00:00:00Z")
	if err != nil {
		t.Fatal(err)
	}

	if recency != 1.0 {
		t.Errorf("Expected future timestamp to clamp to recency 1.0, got %v", recency)
	}
}

func TestScorer_Recency_Monotonic(t *testing.T) {
	scorer := NewScorer(0.7, 0.3, scorerNow)

	fresh, err := scorer.Recency("2025-11-02T23:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	stale, err := scorer.Recency("2025-11-01T00:00:00Z")
	if err != nil {
		t.Fatal(err)
	}

	if fresh <= stale {
		t.Errorf("Expected newer post to score higher recency, got fresh=%v stale=%v", fresh, stale)
	}
}

func TestScorer_Run_MalformedTimestampAborts(t *testing.T) {
	scorer := NewScorer(0.7, 0.3, scorerNow)

	posts := []Post{
		{CreatedAt: "2025-11-03T00:00:00Z", Metrics: Metrics{LikeCount: 1}},
		{CreatedAt: "not a timestamp"},
		{CreatedAt: "2025-11-03T00:00:00Z", Metrics: Metrics{LikeCount: 2}},
	}

	err := scorer.Run(posts)
	if err == nil {
		t.Fatal("Expected error for malformed timestamp")
	}

	var tsErr *MalformedTimestampError
	if !errors.As(err, &tsErr) {
		t.Errorf("Expected MalformedTimestampError, got %T", err)
	}
	if tsErr.Value != "not a timestamp" {
		t.Errorf("Expected offending value in error, got '%s'", tsErr.Value)
	}
}

func TestParseTimestamp_Formats(t *testing.T) {
	cases := []struct {
		value    string
		expected time.Time
	}{
		{"2025-11-03T08:30:00Z", time.Date(2025, 11, 3, 8, 30, 0, 0, time.UTC)},
		{"2025-11-03T08:30:00+02:00", time.Date(2025, 11, 3, 8, 30, 0, 0, time.FixedZone("", 2*3600))},
		{"2025-11-03T08:30:00", time.Date(2025, 11, 3, 8, 30, 0, 0, time.UTC)},
		{"2025-11-03 08:30:00", time.Date(2025, 11, 3, 8, 30, 0, 0, time.UTC)},
		{"2025-11-03", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseTimestamp(tc.value)
		if err != nil {
			t.Errorf("Unexpected error for '%s': %v", tc.value, err)
			continue
		}
		if !got.Equal(tc.expected) {
			t.Errorf("For '%s' expected %v, got %v", tc.value, tc.expected, got)
		}
	}
}
