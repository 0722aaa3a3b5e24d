package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IssueRepositoryImpl persists issue and snapshot metadata so the HTTP
// API can list published issues without scanning the filesystem.
type IssueRepositoryImpl struct {
	db *DB
}

func NewIssueRepository(db *DB) *IssueRepositoryImpl {
	return &IssueRepositoryImpl{db: db}
}

func (r *IssueRepositoryImpl) GetIssue(date string) (*Issue, error) {
	var issue Issue
	err := r.db.QueryRow(`
		SELECT id, date, title, paper_count, generated_at, created_at, updated_at
		FROM issues
		WHERE date = ?
	`, date).Scan(
		&issue.ID, &issue.Date, &issue.Title, &issue.PaperCount,
		&issue.GeneratedAt, &issue.CreatedAt, &issue.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return &issue, nil
}

func (r *IssueRepositoryImpl) GetIssues() ([]Issue, error) {
	rows, err := r.db.Query(`
		SELECT id, date, title, paper_count, generated_at, created_at, updated_at
		FROM issues
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get issues: %w", err)
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var issue Issue
		err := rows.Scan(
			&issue.ID, &issue.Date, &issue.Title, &issue.PaperCount,
			&issue.GeneratedAt, &issue.CreatedAt, &issue.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issues = append(issues, issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue rows: %w", err)
	}

	return issues, nil
}

func (r *IssueRepositoryImpl) GetIssueCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM issues").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get issue count: %w", err)
	}
	return count, nil
}

func (r *IssueRepositoryImpl) UpsertIssue(date, title string, paperCount int, generatedAt string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT INTO issues (id, date, title, paper_count, generated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			title = excluded.title,
			paper_count = excluded.paper_count,
			generated_at = excluded.generated_at,
			updated_at = excluded.updated_at
	`, uuid.NewString(), date, title, paperCount, generatedAt, now, now)

	if err != nil {
		return fmt.Errorf("failed to upsert issue: %w", err)
	}

	return nil
}

func (r *IssueRepositoryImpl) GetSnapshot(date string) (*SnapshotRecord, error) {
	var record SnapshotRecord
	err := r.db.QueryRow(`
		SELECT id, issue_date, source, payload, generated_at, created_at
		FROM snapshots
		WHERE issue_date = ?
	`, date).Scan(
		&record.ID, &record.IssueDate, &record.Source,
		&record.Payload, &record.GeneratedAt, &record.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return &record, nil
}

func (r *IssueRepositoryImpl) UpsertSnapshot(date, source, payload, generatedAt string) error {
	_, err := r.db.Exec(`
		INSERT INTO snapshots (id, issue_date, source, payload, generated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (issue_date) DO UPDATE SET
			source = excluded.source,
			payload = excluded.payload,
			generated_at = excluded.generated_at
	`, uuid.NewString(), date, source, payload, generatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}
