// Package schema holds the typed inputs and outputs shared across the
// opendxi retrieval, scoring and storage layers.
package schema

import "fmt"

// DateOnly is the calendar-date layout used for window boundaries and
// day-bucket keys. Lexicographic order on these strings is chronological.
const DateOnly = "2006-01-02"

// SprintWindow is an inclusive-inclusive date range used as the unit of
// measurement. Start and End are YYYY-MM-DD strings.
type SprintWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Key returns the stable identity of the window, used as the store's
// primary key.
func (w SprintWindow) Key() string {
	return fmt.Sprintf("sprint_%s_%s", w.Start, w.End)
}

// Sprint is window metadata for the selector surfaces (CLI, MCP).
type Sprint struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Start     string `json:"start"`
	End       string `json:"end"`
	IsCurrent bool   `json:"is_current"`
}

// Window returns the sprint's window.
func (s Sprint) Window() SprintWindow {
	return SprintWindow{Start: s.Start, End: s.End}
}

// RepositoryRef describes one organization repository as returned by the
// repositories query.
type RepositoryRef struct {
	Name       string
	IsArchived bool
	IsFork     bool
	PushedAt   string // RFC3339
}

// Review is one pull request review, embedded under its parent PR.
type Review struct {
	ReviewerLogin string
	SubmittedAt   string // RFC3339, empty when the review was never submitted
	State         string
}

// PullRequest is one pull request with its reviews attached.
type PullRequest struct {
	Number      int
	Repo        string
	CreatedAt   string // RFC3339
	MergedAt    string // RFC3339, empty when unmerged
	AuthorLogin string
	Additions   int
	Deletions   int
	Reviews     []Review
}

// Commit is one default-branch commit.
type Commit struct {
	AuthorLogin string // falls back to the git author name when no account is linked
	Date        string // RFC3339
	Additions   int
	Deletions   int
}
