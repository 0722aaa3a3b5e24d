package snapshot

import (
	"math"
	"time"
)

// Scorer attaches a weighted relevance score to each post. The reference
// timestamp is captured once per pipeline run so that age-based scores stay
// comparable within the run.
type Scorer struct {
	engagementWeight float64
	recencyWeight    float64
	now              time.Time
}

func NewScorer(engagementWeight, recencyWeight float64, now time.Time) *Scorer {
	return &Scorer{
		engagementWeight: engagementWeight,
		recencyWeight:    recencyWeight,
		now:              now,
	}
}

// Run scores every post in place at full precision. Rounding happens only
// at emission, never here, so ranking comparisons are free of tie artifacts.
// The batch aborts on the first unparsable created_at.
func (s *Scorer) Run(posts []Post) error {
	for i := range posts {
		recency, err := s.Recency(posts[i].CreatedAt)
		if err != nil {
			return err
		}
		posts[i].Score = s.engagementWeight*s.Engagement(posts[i].Metrics) + s.recencyWeight*recency
	}
	return nil
}

// Engagement is a weighted linear combination of the raw interaction
// counters. Absent counters unmarshal to zero and contribute nothing.
func (s *Scorer) Engagement(m Metrics) float64 {
	return float64(m.LikeCount) +
		2.0*float64(m.RetweetCount) +
		1.5*float64(m.ReplyCount) +
		1.2*float64(m.QuoteCount) +
		0.8*float64(m.BookmarkCount) +
		float64(m.ImpressionCount)/1000.0
}

// Recency decays exponentially with the post's age in hours, with a decay
// constant of 24 hours. Future timestamps clamp to zero age, giving the
// maximum factor of 1.0.
func (s *Scorer) Recency(createdAt string) (float64, error) {
	created, err := ParseTimestamp(createdAt)
	if err != nil {
		return 0, err
	}

	ageHours := s.now.Sub(created).Hours()
	if ageHours < 0 {
		ageHours = 0
	}

	return math.Exp(-ageHours / 24.0), nil
}

// ParseTimestamp accepts ISO-8601 timestamps, assuming UTC when the source
// gives no offset.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	var lastErr error
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, &MalformedTimestampError{Value: value, Err: lastErr}
}
