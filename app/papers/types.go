package papers

// Note is one parsed markdown paper note.
type Note struct {
	ID       string
	Title    string
	Authors  string
	Summary  string
	Insights []string
	Tags     []string
	Link     string
	Body     string
	Path     string
}

// section preserves the insertion order of "## " headings, which a plain
// map would lose.
type section struct {
	heading string
	lines   []string
}
