package snapshot

import "sort"

type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Run returns a copy of posts sorted descending by score. The sort is
// stable: equal scores keep their post-deduplication arrival order.
func (r *Ranker) Run(posts []Post) []Post {
	ranked := make([]Post, len(posts))
	copy(ranked, posts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// SummarizeTopics buckets topic posts by originating query (first-seen
// insertion order, missing query becomes "Other"), then sorts the bucket
// summaries descending by summed score and truncates to topN. The lead post
// is recomputed as the per-bucket maximum rather than trusting the global
// ordering.
func (r *Ranker) SummarizeTopics(posts []Post, topN int) []TopicSummary {
	order := make([]string, 0)
	buckets := make(map[string][]Post)

	for _, post := range posts {
		query := post.Query
		if query == "" {
			query = "Other"
		}
		if _, ok := buckets[query]; !ok {
			order = append(order, query)
		}
		buckets[query] = append(buckets[query], post)
	}

	summaries := make([]TopicSummary, 0, len(order))
	for _, query := range order {
		members := buckets[query]

		lead := members[0]
		total := 0.0
		for _, member := range members {
			total += member.Score
			if member.Score > lead.Score {
				lead = member
			}
		}

		summaries = append(summaries, TopicSummary{
			Query:      query,
			Count:      len(members),
			LeadText:   Truncate(lead.Text, 180),
			LeadURL:    lead.URL,
			LeadHandle: lead.Handle,
			Score:      total,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Score > summaries[j].Score
	})

	if topN >= 0 && len(summaries) > topN {
		summaries = summaries[:topN]
	}

	return summaries
}
