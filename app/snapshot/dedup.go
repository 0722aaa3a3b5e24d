package snapshot

type Deduplicator struct{}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Run removes later occurrences of any repeated (id, handle) key, keeping
// the first arrival and the original relative order. Empty id and handle
// values are legal and match each other, so id-less posts collapse into one
// record.
func (d *Deduplicator) Run(posts []Post) []Post {
	seen := make(map[string]struct{}, len(posts))
	cleaned := make([]Post, 0, len(posts))

	for _, post := range posts {
		key := post.ID + "::" + post.Handle
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, post)
	}

	return cleaned
}
