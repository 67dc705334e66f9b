package schema

// DimensionScores are the five normalized DXI dimensions, each in [0,100].
type DimensionScores struct {
	ReviewSpeed     float64 `json:"review_speed"`
	CycleTime       float64 `json:"cycle_time"`
	PRSize          float64 `json:"pr_size"`
	ReviewCoverage  float64 `json:"review_coverage"`
	CommitFrequency float64 `json:"commit_frequency"`
}

// DeveloperMetrics is one developer's sprint activity plus derived scores.
// Average times are nil when the sprint produced no latency samples.
type DeveloperMetrics struct {
	Developer          string           `json:"developer"`
	Commits            int              `json:"commits"`
	PRsOpened          int              `json:"prs_opened"`
	PRsMerged          int              `json:"prs_merged"`
	ReviewsGiven       int              `json:"reviews_given"`
	LinesAdded         int              `json:"lines_added"`
	LinesDeleted       int              `json:"lines_deleted"`
	AvgReviewTimeHours *float64         `json:"avg_review_time_hours"`
	AvgCycleTimeHours  *float64         `json:"avg_cycle_time_hours"`
	DXIScore           float64          `json:"dxi_score"`
	DimensionScores    *DimensionScores `json:"dimension_scores,omitempty"`
}

// DailyActivity is one day bucket for the timeline, keyed by YYYY-MM-DD.
type DailyActivity struct {
	Date         string `json:"date"`
	Commits      int    `json:"commits"`
	PRsOpened    int    `json:"prs_opened"`
	PRsMerged    int    `json:"prs_merged"`
	ReviewsGiven int    `json:"reviews_given"`
}

// MetricsSummary aggregates a sprint across all developers.
type MetricsSummary struct {
	TotalCommits int     `json:"total_commits"`
	TotalPRs     int     `json:"total_prs"`
	TotalMerged  int     `json:"total_merged"`
	TotalReviews int     `json:"total_reviews"`
	AvgDXIScore  float64 `json:"avg_dxi_score"`
}

// MetricsResult is the complete output for one sprint window. Developers
// are ordered by DXI score descending, daily buckets by date ascending.
type MetricsResult struct {
	Developers          []DeveloperMetrics `json:"developers"`
	Daily               []DailyActivity    `json:"daily"`
	Summary             MetricsSummary     `json:"summary"`
	TeamDimensionScores *DimensionScores   `json:"team_dimension_scores,omitempty"`
}

// EmptyMetricsResult is the canonical result for a window with no
// retrievable activity.
func EmptyMetricsResult() *MetricsResult {
	return &MetricsResult{
		Developers: []DeveloperMetrics{},
		Daily:      []DailyActivity{},
	}
}

// SprintHistoryEntry is one sprint's team-level summary for trend surfaces.
type SprintHistoryEntry struct {
	SprintLabel     string          `json:"sprint_label"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	AvgDXIScore     float64         `json:"avg_dxi_score"`
	DimensionScores DimensionScores `json:"dimension_scores"`
	DeveloperCount  int             `json:"developer_count"`
	TotalCommits    int             `json:"total_commits"`
	TotalPRs        int             `json:"total_prs"`
}

// DeveloperHistoryEntry is one developer's metrics for one sprint.
type DeveloperHistoryEntry struct {
	SprintLabel        string          `json:"sprint_label"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	DXIScore           float64         `json:"dxi_score"`
	DimensionScores    DimensionScores `json:"dimension_scores"`
	Commits            int             `json:"commits"`
	PRsOpened          int             `json:"prs_opened"`
	PRsMerged          int             `json:"prs_merged"`
	ReviewsGiven       int             `json:"reviews_given"`
	LinesAdded         int             `json:"lines_added"`
	LinesDeleted       int             `json:"lines_deleted"`
	AvgReviewTimeHours *float64        `json:"avg_review_time_hours"`
	AvgCycleTimeHours  *float64        `json:"avg_cycle_time_hours"`
}

// DeveloperHistory is a developer's trajectory across sprints, oldest
// first, with the team trajectory alongside for comparison.
type DeveloperHistory struct {
	Developer   string                  `json:"developer"`
	Sprints     []DeveloperHistoryEntry `json:"sprints"`
	TeamHistory []SprintHistoryEntry    `json:"team_history"`
}
