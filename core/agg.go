package core

import (
	"sort"
	"strings"
	"time"

	"github.com/opendxi/opendxi/schema"
)

// devAggregate accumulates one developer's sprint activity before scoring.
// It is transient and never persisted; only the derived DeveloperMetrics
// leaves the aggregator.
type devAggregate struct {
	commits      int
	prsOpened    int
	prsMerged    int
	reviewsGiven int
	linesAdded   int
	linesDeleted int
	reviewHours  []float64
	cycleHours   []float64
}

// aggregator folds window-filtered PRs and commits into per-developer and
// per-day maps. Buckets are created lazily on first contribution.
type aggregator struct {
	window schema.SprintWindow
	devs   map[string]*devAggregate
	daily  map[string]*schema.DailyActivity
}

func newAggregator(window schema.SprintWindow) *aggregator {
	return &aggregator{
		window: window,
		devs:   make(map[string]*devAggregate),
		daily:  make(map[string]*schema.DailyActivity),
	}
}

// isExcludedLogin reports whether a login must contribute nothing: empty
// logins and automation accounts carrying the "[bot]" suffix.
func isExcludedLogin(login string) bool {
	return login == "" || strings.HasSuffix(login, schema.BotSuffix)
}

func (a *aggregator) dev(login string) *devAggregate {
	d, ok := a.devs[login]
	if !ok {
		d = &devAggregate{}
		a.devs[login] = d
	}
	return d
}

func (a *aggregator) day(date string) *schema.DailyActivity {
	b, ok := a.daily[date]
	if !ok {
		b = &schema.DailyActivity{Date: date}
		a.daily[date] = b
	}
	return b
}

// hoursBetween returns the duration in hours between two RFC3339
// timestamps, or 0 with ok=false when either fails to parse.
func hoursBetween(from, to string) (float64, bool) {
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return 0, false
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return 0, false
	}
	return end.Sub(start).Hours(), true
}

// AddPullRequest folds one PR and its reviews into the aggregates. PRs
// created outside the window are ignored. A merge is counted only when
// it lands on or before the window end; a later merge leaves the PR
// opened-but-unmerged with no cycle-time sample. Reviews are counted only
// when submitted on or before the window end, and a review's latency
// sample is kept only when strictly positive.
func (a *aggregator) AddPullRequest(pr schema.PullRequest) {
	created := dateOf(pr.CreatedAt)
	if created < a.window.Start || created > a.window.End {
		return
	}
	if isExcludedLogin(pr.AuthorLogin) {
		return
	}

	d := a.dev(pr.AuthorLogin)
	d.prsOpened++
	d.linesAdded += pr.Additions
	d.linesDeleted += pr.Deletions
	a.day(created).PRsOpened++

	if pr.MergedAt != "" {
		merged := dateOf(pr.MergedAt)
		if merged <= a.window.End {
			d.prsMerged++
			a.day(merged).PRsMerged++
			if hours, ok := hoursBetween(pr.CreatedAt, pr.MergedAt); ok {
				d.cycleHours = append(d.cycleHours, hours)
			}
		}
	}

	for _, review := range pr.Reviews {
		if isExcludedLogin(review.ReviewerLogin) || review.SubmittedAt == "" {
			continue
		}
		submitted := dateOf(review.SubmittedAt)
		if submitted > a.window.End {
			continue
		}
		r := a.dev(review.ReviewerLogin)
		r.reviewsGiven++
		a.day(submitted).ReviewsGiven++
		if hours, ok := hoursBetween(pr.CreatedAt, review.SubmittedAt); ok && hours > 0 {
			r.reviewHours = append(r.reviewHours, hours)
		}
	}
}

// AddCommit folds one default-branch commit into the aggregates. Commits
// dated outside the window are ignored.
func (a *aggregator) AddCommit(c schema.Commit) {
	if isExcludedLogin(c.AuthorLogin) {
		return
	}
	date := dateOf(c.Date)
	if date < a.window.Start || date > a.window.End {
		return
	}
	d := a.dev(c.AuthorLogin)
	d.commits++
	d.linesAdded += c.Additions
	d.linesDeleted += c.Deletions
	a.day(date).Commits++
}

func mean(samples []float64) *float64 {
	if len(samples) == 0 {
		return nil
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	avg := sum / float64(len(samples))
	return &avg
}

// Result derives the final MetricsResult: scored developers ordered by
// DXI descending (login ascending on ties, so output is deterministic),
// day buckets ordered by date, summary totals and team dimension scores.
func (a *aggregator) Result() *schema.MetricsResult {
	developers := make([]schema.DeveloperMetrics, 0, len(a.devs))
	for login, d := range a.devs {
		m := schema.DeveloperMetrics{
			Developer:          login,
			Commits:            d.commits,
			PRsOpened:          d.prsOpened,
			PRsMerged:          d.prsMerged,
			ReviewsGiven:       d.reviewsGiven,
			LinesAdded:         d.linesAdded,
			LinesDeleted:       d.linesDeleted,
			AvgReviewTimeHours: mean(d.reviewHours),
			AvgCycleTimeHours:  mean(d.cycleHours),
		}
		m.DXIScore = DXIScore(&m)
		scores := DeveloperDimensionScores(&m)
		m.DimensionScores = &scores
		developers = append(developers, m)
	}
	sort.Slice(developers, func(i, j int) bool {
		if developers[i].DXIScore != developers[j].DXIScore {
			return developers[i].DXIScore > developers[j].DXIScore
		}
		return developers[i].Developer < developers[j].Developer
	})

	daily := make([]schema.DailyActivity, 0, len(a.daily))
	for _, b := range a.daily {
		daily = append(daily, *b)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	var summary schema.MetricsSummary
	var scoreSum float64
	for i := range developers {
		summary.TotalCommits += developers[i].Commits
		summary.TotalPRs += developers[i].PRsOpened
		summary.TotalMerged += developers[i].PRsMerged
		summary.TotalReviews += developers[i].ReviewsGiven
		scoreSum += developers[i].DXIScore
	}
	if len(developers) > 0 {
		summary.AvgDXIScore = scoreSum / float64(len(developers))
	}

	team := TeamDimensionScores(developers)
	return &schema.MetricsResult{
		Developers:          developers,
		Daily:               daily,
		Summary:             summary,
		TeamDimensionScores: &team,
	}
}
