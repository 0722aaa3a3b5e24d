package database

type IssueRepository interface {
	GetIssue(date string) (*Issue, error)
	GetIssues() ([]Issue, error)
	GetIssueCount() (int, error)
	UpsertIssue(date, title string, paperCount int, generatedAt string) error

	GetSnapshot(date string) (*SnapshotRecord, error)
	UpsertSnapshot(date, source, payload, generatedAt string) error
}
