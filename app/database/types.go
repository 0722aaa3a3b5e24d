package database

type Issue struct {
	ID          string // Database UUID
	Date        string // Issue date, YYYY-MM-DD
	Title       string
	PaperCount  int
	GeneratedAt string // RFC 3339 timestamp of the build that produced the issue
	CreatedAt   string // Stored as RFC 3339 text, SQLite has no native timestamp type
	UpdatedAt   string
}

type SnapshotRecord struct {
	ID          string
	IssueDate   string
	Source      string // live or mock
	Payload     string // full snapshot JSON document
	GeneratedAt string
	CreatedAt   string
}
