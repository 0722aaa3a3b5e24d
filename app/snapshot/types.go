package snapshot

// Snapshot pipeline types. A Post is one social-media post normalized
// regardless of origin stream; identity is the (id, handle) pair.

type Metrics struct {
	LikeCount       int64 `json:"like_count"`
	RetweetCount    int64 `json:"retweet_count"`
	ReplyCount      int64 `json:"reply_count"`
	QuoteCount      int64 `json:"quote_count"`
	BookmarkCount   int64 `json:"bookmark_count"`
	ImpressionCount int64 `json:"impression_count"`
}

type Post struct {
	ID        string  `json:"id"`
	Handle    string  `json:"handle"`
	Query     string  `json:"query,omitempty"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"created_at"`
	Metrics   Metrics `json:"public_metrics"`
	URL       string  `json:"url"`
	Score     float64 `json:"score"`
}

// Fetched holds the two raw post streams produced by a source adapter.
type Fetched struct {
	TimelinePosts []Post `json:"timeline_posts"`
	TopicPosts    []Post `json:"topic_posts"`
}

// TopicSummary aggregates all topic-stream posts sharing one query. The
// lead fields come from the highest-scored post in the bucket; Score is the
// sum of member scores, kept at full precision until emission.
type TopicSummary struct {
	Query      string  `json:"query"`
	Count      int     `json:"count"`
	LeadText   string  `json:"lead_text"`
	LeadURL    string  `json:"lead_url"`
	LeadHandle string  `json:"lead_handle"`
	Score      float64 `json:"score"`
}

type Sections struct {
	InfluencerPosts []Post         `json:"热门博主动态"`
	TopicSummaries  []TopicSummary `json:"热门话题"`
	Viewpoints      []string       `json:"今日关键观点"`
	FollowupLeads   []string       `json:"可跟进线索"`
}

type RawSections struct {
	TimelinePosts []Post `json:"timeline_posts"`
	TopicPosts    []Post `json:"topic_posts"`
}
