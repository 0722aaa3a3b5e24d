package snapshot

import (
	"math"
	"time"

	"github.com/syeehyn/ai-daily/app/config"
)

// Snapshot is the structured payload emitted for one issue date. Its shape
// is consumed by the site builder and downstream readers and must stay
// stable.
type Snapshot struct {
	Date        string         `json:"date"`
	Source      string         `json:"source"`
	GeneratedAt string         `json:"generated_at"`
	Config      *config.Config `json:"config"`
	Sections    Sections       `json:"sections"`
	Raw         RawSections    `json:"raw"`
}

// Pipeline runs the five-stage batch transform: dedupe, score, rank,
// bucket, and build views. It is single-threaded and pure over the fetched
// input; the only ambient state is the now timestamp captured at
// construction and reused for every scoring computation.
type Pipeline struct {
	cfg    *config.Config
	source string
	now    time.Time
}

func NewPipeline(cfg *config.Config, source string, now time.Time) *Pipeline {
	return &Pipeline{cfg: cfg, source: source, now: now}
}

// Run produces the structured payload and its markdown rendering for one
// issue date. Identical input and an identical now yield byte-identical
// output.
func (p *Pipeline) Run(date string, fetched *Fetched) (*Snapshot, string, error) {
	dedup := NewDeduplicator()
	timelinePosts := dedup.Run(fetched.TimelinePosts)
	topicPosts := dedup.Run(fetched.TopicPosts)

	scorer := NewScorer(p.cfg.RankingWeights.Engagement, p.cfg.RankingWeights.Recency, p.now)
	if err := scorer.Run(timelinePosts); err != nil {
		return nil, "", err
	}
	if err := scorer.Run(topicPosts); err != nil {
		return nil, "", err
	}

	ranker := NewRanker()
	rankedInfluencers := ranker.Run(timelinePosts)
	rankedTopics := ranker.Run(topicPosts)

	// Summaries are built from full-precision scores; rounding below is a
	// presentation concern only.
	topicSummary := ranker.SummarizeTopics(rankedTopics, p.cfg.Output.TopTopics)

	roundPosts(rankedInfluencers)
	roundPosts(rankedTopics)
	for i := range topicSummary {
		topicSummary[i].Score = round2(topicSummary[i].Score)
	}

	topInfluencers := headPosts(rankedInfluencers, p.cfg.Output.TopInfluencerPosts)

	candidates := make([]Post, 0, len(rankedInfluencers)+len(rankedTopics))
	candidates = append(candidates, rankedInfluencers...)
	candidates = append(candidates, rankedTopics...)

	views := NewViewBuilder(p.cfg.FollowupKeywords)
	viewpoints := views.Viewpoints(candidates, p.cfg.Output.KeyViewpoints)
	followups := views.FollowupLeads(candidates, p.cfg.Output.FollowupLeads)

	payload := &Snapshot{
		Date:        date,
		Source:      p.source,
		GeneratedAt: p.now.UTC().Format(time.RFC3339Nano),
		Config:      p.cfg,
		Sections: Sections{
			InfluencerPosts: topInfluencers,
			TopicSummaries:  topicSummary,
			Viewpoints:      viewpoints,
			FollowupLeads:   followups,
		},
		Raw: RawSections{
			TimelinePosts: rankedInfluencers,
			TopicPosts:    rankedTopics,
		},
	}

	markdown := RenderMarkdown(date, topInfluencers, topicSummary, viewpoints, followups)

	return payload, markdown, nil
}

func headPosts(posts []Post, n int) []Post {
	if n > len(posts) {
		n = len(posts)
	}
	head := make([]Post, 0, n)
	head = append(head, posts[:n]...)
	return head
}

func roundPosts(posts []Post) {
	for i := range posts {
		posts[i].Score = round2(posts[i].Score)
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
