package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
influencer_handles:
  - karpathy
  - sama

topic_queries:
  - '"agent RL" -is:retweet'

ranking_weights:
  engagement: 0.6
  recency: 0.4

output:
  timeline_tweets_per_user: 7
  top_topics: 4

followup_keywords:
  - launch
`

	path := filepath.Join(tempDir, "x-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(config.InfluencerHandles) != 2 {
		t.Errorf("Expected 2 handles, got %d", len(config.InfluencerHandles))
	}
	if config.InfluencerHandles[0] != "karpathy" {
		t.Errorf("Expected first handle 'karpathy', got '%s'", config.InfluencerHandles[0])
	}
	if len(config.TopicQueries) != 1 {
		t.Errorf("Expected 1 topic query, got %d", len(config.TopicQueries))
	}
	if config.RankingWeights.Engagement != 0.6 {
		t.Errorf("Expected engagement weight 0.6, got %v", config.RankingWeights.Engagement)
	}
	if config.RankingWeights.Recency != 0.4 {
		t.Errorf("Expected recency weight 0.4, got %v", config.RankingWeights.Recency)
	}
	if config.Output.TimelineTweetsPerUser != 7 {
		t.Errorf("Expected timeline_tweets_per_user 7, got %d", config.Output.TimelineTweetsPerUser)
	}
	if len(config.FollowupKeywords) != 1 || config.FollowupKeywords[0] != "launch" {
		t.Errorf("Expected configured keywords to replace defaults, got %v", config.FollowupKeywords)
	}
}

func TestLoadConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()

	content := `
influencer_handles:
  - karpathy
`

	path := filepath.Join(tempDir, "x-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatal(err)
	}

	if config.RankingWeights.Engagement != 0.7 {
		t.Errorf("Expected default engagement weight 0.7, got %v", config.RankingWeights.Engagement)
	}
	if config.RankingWeights.Recency != 0.3 {
		t.Errorf("Expected default recency weight 0.3, got %v", config.RankingWeights.Recency)
	}
	if config.Output.TimelineTweetsPerUser != 5 {
		t.Errorf("Expected default timeline_tweets_per_user 5, got %d", config.Output.TimelineTweetsPerUser)
	}
	if config.Output.TopInfluencerPosts != 8 {
		t.Errorf("Expected default top_influencer_posts 8, got %d", config.Output.TopInfluencerPosts)
	}
	if len(config.FollowupKeywords) != len(DefaultFollowupKeywords) {
		t.Errorf("Expected default followup keywords, got %v", config.FollowupKeywords)
	}
}

func TestLoadMissingConfigFails(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()

	if err == nil {
		t.Errorf("Expected error for missing config file")
	}
}

func TestLoadRejectsNegativeWeights(t *testing.T) {
	tempDir := t.TempDir()

	content := `
ranking_weights:
  engagement: -0.7
  recency: 0.3
`

	path := filepath.Join(tempDir, "x-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader(path).Load()
	if err == nil {
		t.Errorf("Expected validation error for negative weight")
	}
}

func TestLoadRejectsNegativeLimits(t *testing.T) {
	tempDir := t.TempDir()

	content := `
output:
  top_topics: -1
`

	path := filepath.Join(tempDir, "x-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader(path).Load()
	if err == nil {
		t.Errorf("Expected validation error for negative limit")
	}
}
