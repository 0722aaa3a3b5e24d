package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMockSource_Fetch(t *testing.T) {
	tempDir := t.TempDir()

	content := `{
  "timeline_posts": [
    {"id": "1", "handle": "karpathy", "text": "hi", "created_at": "2025-11-02T08:00:00Z",
     "public_metrics": {"like_count": 10}, "url": "https://x.com/karpathy/status/1"}
  ],
  "topic_posts": []
}`

	path := filepath.Join(tempDir, "mock.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewMockSource(path)

	if src.Name() != "mock" {
		t.Errorf("Expected source name 'mock', got '%s'", src.Name())
	}

	fetched, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(fetched.TimelinePosts) != 1 {
		t.Fatalf("Expected 1 timeline post, got %d", len(fetched.TimelinePosts))
	}
	if fetched.TimelinePosts[0].Handle != "karpathy" {
		t.Errorf("Expected handle 'karpathy', got '%s'", fetched.TimelinePosts[0].Handle)
	}
	if fetched.TimelinePosts[0].Metrics.LikeCount != 10 {
		t.Errorf("Expected 10 likes, got %d", fetched.TimelinePosts[0].Metrics.LikeCount)
	}
	if fetched.TopicPosts == nil {
		t.Errorf("Expected non-nil topic posts slice")
	}
}

func TestMockSource_Fetch_MissingStreamsBecomeEmpty(t *testing.T) {
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "mock.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	fetched, err := NewMockSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if fetched.TimelinePosts == nil || fetched.TopicPosts == nil {
		t.Errorf("Expected empty slices for absent streams, got %v and %v",
			fetched.TimelinePosts, fetched.TopicPosts)
	}
}

func TestMockSource_Fetch_MissingFile(t *testing.T) {
	src := NewMockSource(filepath.Join(t.TempDir(), "nope.json"))

	_, err := src.Fetch(context.Background())
	if err == nil {
		t.Errorf("Expected error for missing fixture")
	}
}
