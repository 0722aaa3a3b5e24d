package snapshot

import (
	"testing"
)

func TestDeduplicator_Run_FirstWins(t *testing.T) {
	dedup := NewDeduplicator()

	posts := []Post{
		{ID: "1", Handle: "alice", Text: "first"},
		{ID: "2", Handle: "bob", Text: "second"},
		{ID: "1", Handle: "alice", Text: "duplicate of first"},
		{ID: "3", Handle: "carol", Text: "third"},
	}

	result := dedup.Run(posts)

	if len(result) != 3 {
		t.Fatalf("Expected 3 posts after dedup, got %d", len(result))
	}
	if result[0].Text != "first" {
		t.Errorf("Expected the first occurrence to survive, got '%s'", result[0].Text)
	}
	if result[1].ID != "2" || result[2].ID != "3" {
		t.Errorf("Expected relative order preserved, got %s, %s", result[1].ID, result[2].ID)
	}
}

func TestDeduplicator_Run_SameIDDifferentHandle(t *testing.T) {
	dedup := NewDeduplicator()

	posts := []Post{
		{ID: "1", Handle: "alice"},
		{ID: "1", Handle: "bob"},
	}

	result := dedup.Run(posts)

	// Identity is the (id, handle) pair, not the id alone
	if len(result) != 2 {
		t.Errorf("Expected 2 posts, same ID under different handles is not a duplicate, got %d", len(result))
	}
}

func TestDeduplicator_Run_EmptyKeysCollapse(t *testing.T) {
	dedup := NewDeduplicator()

	posts := []Post{
		{ID: "", Handle: "", Text: "kept"},
		{ID: "", Handle: "", Text: "dropped"},
	}

	result := dedup.Run(posts)

	if len(result) != 1 {
		t.Fatalf("Expected id-less posts to collapse into one, got %d", len(result))
	}
	if result[0].Text != "kept" {
		t.Errorf("Expected first id-less post to survive, got '%s'", result[0].Text)
	}
}

func TestDeduplicator_Run_EmptyInput(t *testing.T) {
	dedup := NewDeduplicator()

	result := dedup.Run(nil)

	if result == nil {
		t.Errorf("Expected empty slice, got nil")
	}
	if len(result) != 0 {
		t.Errorf("Expected 0 posts, got %d", len(result))
	}
}
