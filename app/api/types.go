package api

import (
	"github.com/syeehyn/ai-daily/app/database"
)

// Handler serves the issue archive over HTTP. Rebuild is invoked by the
// authenticated rebuild endpoint and may be nil when builds are external.
type Handler struct {
	issueRepo database.IssueRepository
	issuesDir string
	version   string
	rebuild   func() error
}
