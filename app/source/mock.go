package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/syeehyn/ai-daily/app/snapshot"
)

// MockSource reads a static fixture with the same shape as a live fetch:
// timeline_posts and topic_posts arrays of already-normalized posts.
type MockSource struct {
	path string
}

func NewMockSource(path string) *MockSource {
	return &MockSource{path: path}
}

func (s *MockSource) Name() string {
	return "mock"
}

func (s *MockSource) Fetch(ctx context.Context) (*snapshot.Fetched, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("mock data not found: %w", err)
	}

	var fetched snapshot.Fetched
	if err := json.Unmarshal(data, &fetched); err != nil {
		return nil, fmt.Errorf("failed to parse mock data %s: %w", s.path, err)
	}

	if fetched.TimelinePosts == nil {
		fetched.TimelinePosts = []snapshot.Post{}
	}
	if fetched.TopicPosts == nil {
		fetched.TopicPosts = []snapshot.Post{}
	}

	return &fetched, nil
}
