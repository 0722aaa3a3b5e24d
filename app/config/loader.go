package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFollowupKeywords marks posts worth chasing up when no keyword set
// is configured.
var DefaultFollowupKeywords = []string{
	"release", "benchmark", "open", "paper", "eval", "agent", "roadmap", "next week",
}

// Loader handles loading and validation of snapshot configurations.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the YAML configuration file, applies defaults, and validates
// it. A missing file is a configuration error: the run aborts rather than
// silently falling back to defaults.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", l.path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	return &config, nil
}

func (l *Loader) setDefaults(config *Config) {
	if config.RankingWeights.Engagement == 0 && config.RankingWeights.Recency == 0 {
		config.RankingWeights.Engagement = 0.7
		config.RankingWeights.Recency = 0.3
	}
	if config.Output.TimelineTweetsPerUser == 0 {
		config.Output.TimelineTweetsPerUser = 5
	}
	if config.Output.SearchResultsPerQuery == 0 {
		config.Output.SearchResultsPerQuery = 10
	}
	if config.Output.TopInfluencerPosts == 0 {
		config.Output.TopInfluencerPosts = 8
	}
	if config.Output.TopTopics == 0 {
		config.Output.TopTopics = 6
	}
	if config.Output.KeyViewpoints == 0 {
		config.Output.KeyViewpoints = 5
	}
	if config.Output.FollowupLeads == 0 {
		config.Output.FollowupLeads = 5
	}
	if len(config.FollowupKeywords) == 0 {
		config.FollowupKeywords = append([]string{}, DefaultFollowupKeywords...)
	}
}

func (l *Loader) validate(config *Config) error {
	if config.RankingWeights.Engagement < 0 {
		return fmt.Errorf("engagement weight must be non-negative")
	}
	if config.RankingWeights.Recency < 0 {
		return fmt.Errorf("recency weight must be non-negative")
	}

	limits := map[string]int{
		"timeline_tweets_per_user": config.Output.TimelineTweetsPerUser,
		"search_results_per_query": config.Output.SearchResultsPerQuery,
		"top_influencer_posts":     config.Output.TopInfluencerPosts,
		"top_topics":               config.Output.TopTopics,
		"key_viewpoints":           config.Output.KeyViewpoints,
		"followup_leads":           config.Output.FollowupLeads,
	}
	for name, value := range limits {
		if value < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}

	return nil
}
