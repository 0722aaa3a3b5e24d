package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/syeehyn/ai-daily/app/database"
)

var dateParamRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func NewHandler(issueRepo database.IssueRepository, issuesDir, version string, rebuild func() error) *Handler {
	return &Handler{
		issueRepo: issueRepo,
		issuesDir: issuesDir,
		version:   version,
		rebuild:   rebuild,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if issueCount, err := h.issueRepo.GetIssueCount(); err == nil {
		health["issues"] = issueCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListIssues(c *gin.Context) {
	issues, err := h.issueRepo.GetIssues()
	if err != nil {
		slog.Error("Database error", "operation", "list_issues", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]map[string]interface{}, 0, len(issues))
	for _, issue := range issues {
		out = append(out, map[string]interface{}{
			"date":         issue.Date,
			"title":        issue.Title,
			"paper_count":  issue.PaperCount,
			"generated_at": issue.GeneratedAt,
			"url":          "/issues/" + issue.Date,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"issues": out,
		"total":  len(out),
	})
}

// GetIssue serves the issue's pre-rendered issue-data.json verbatim so the
// API payload is byte-identical to the build artifact.
func (h *Handler) GetIssue(c *gin.Context) {
	date := c.Param("date")
	if !dateParamRe.MatchString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	path := filepath.Join(h.issuesDir, date, "issue-data.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		slog.Error("Failed to read issue data", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read issue data"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	date := c.Param("date")
	if !dateParamRe.MatchString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	record, err := h.issueRepo.GetSnapshot(date)
	if err != nil {
		slog.Error("Database error", "operation", "get_snapshot", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if record != nil {
		c.Header("X-Snapshot-Source", record.Source)
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(record.Payload))
		return
	}

	// Database miss, fall back to the snapshot file next to the issue.
	data, err := os.ReadFile(filepath.Join(h.issuesDir, date, "x-snapshot.json"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Snapshot not found"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handler) APIRebuild(c *gin.Context) {
	if h.rebuild == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rebuild not available"})
		return
	}

	if err := h.rebuild(); err != nil {
		slog.Error("Rebuild failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Rebuild failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Site rebuilt successfully",
	})
}
