package config

// Config is the snapshot configuration: tracked handles, topic queries,
// ranking weights, and per-stage output limits. The JSON tags define the
// config echo embedded in the emitted snapshot payload; followup keywords
// stay out of the echo to match the published shape.
type Config struct {
	InfluencerHandles []string `yaml:"influencer_handles" json:"influencer_handles"`
	TopicQueries      []string `yaml:"topic_queries" json:"topic_queries"`
	RankingWeights    Weights  `yaml:"ranking_weights" json:"ranking_weights"`
	Output            Output   `yaml:"output" json:"output"`
	FollowupKeywords  []string `yaml:"followup_keywords" json:"-"`
}

type Weights struct {
	Engagement float64 `yaml:"engagement" json:"engagement"`
	Recency    float64 `yaml:"recency" json:"recency"`
}

type Output struct {
	TimelineTweetsPerUser int `yaml:"timeline_tweets_per_user" json:"timeline_tweets_per_user"`
	SearchResultsPerQuery int `yaml:"search_results_per_query" json:"search_results_per_query"`
	TopInfluencerPosts    int `yaml:"top_influencer_posts" json:"top_influencer_posts"`
	TopTopics             int `yaml:"top_topics" json:"top_topics"`
	KeyViewpoints         int `yaml:"key_viewpoints" json:"key_viewpoints"`
	FollowupLeads         int `yaml:"followup_leads" json:"followup_leads"`
}
