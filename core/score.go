package core

import (
	"math"

	"github.com/opendxi/opendxi/schema"
)

// DXI dimension weights. They sum to 1.00.
const (
	weightReviewSpeed     = 0.25
	weightCycleTime       = 0.25
	weightPRSize          = 0.20
	weightReviewCoverage  = 0.15
	weightCommitFrequency = 0.15
)

// Raw-input defaults applied when a developer has no latency samples.
const (
	defaultReviewHours = 24.0
	defaultCycleHours  = 48.0
)

// neutralScore is the team-level fallback when a dimension has no valid
// samples at all.
const neutralScore = 50.0

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Linear transforms from raw metric to [0,100]. Thresholds: review under
// 2h and cycle under 8h are perfect, PRs under 200 changed lines are
// perfect, 10 reviews or 20 commits per sprint saturate their dimensions.
func reviewSpeedScore(hours float64) float64 {
	return clampScore(100 - (hours-2)*(100.0/22))
}

func cycleTimeScore(hours float64) float64 {
	return clampScore(100 - (hours-8)*(100.0/64))
}

func prSizeScore(avgLines float64) float64 {
	return clampScore(100 - (avgLines-200)*(100.0/800))
}

func reviewCoverageScore(reviews float64) float64 {
	return clampScore(reviews * 10)
}

func commitFrequencyScore(commits float64) float64 {
	return clampScore(commits * 5)
}

// rawInputs extracts the five raw dimension inputs from one developer's
// aggregates, substituting defaults for absent or zero latency averages.
func rawInputs(m *schema.DeveloperMetrics) (review, cycle, size, reviews, commits float64) {
	review = defaultReviewHours
	if m.AvgReviewTimeHours != nil && *m.AvgReviewTimeHours != 0 {
		review = *m.AvgReviewTimeHours
	}
	cycle = defaultCycleHours
	if m.AvgCycleTimeHours != nil && *m.AvgCycleTimeHours != 0 {
		cycle = *m.AvgCycleTimeHours
	}
	lines := float64(m.LinesAdded + m.LinesDeleted)
	prs := m.PRsOpened
	if prs < 1 {
		prs = 1
	}
	size = lines / float64(prs)
	reviews = float64(m.ReviewsGiven)
	commits = float64(m.Commits)
	return review, cycle, size, reviews, commits
}

// DeveloperDimensionScores computes the five per-developer dimension
// scores, each rounded to one decimal.
func DeveloperDimensionScores(m *schema.DeveloperMetrics) schema.DimensionScores {
	review, cycle, size, reviews, commits := rawInputs(m)
	return schema.DimensionScores{
		ReviewSpeed:     round1(reviewSpeedScore(review)),
		CycleTime:       round1(cycleTimeScore(cycle)),
		PRSize:          round1(prSizeScore(size)),
		ReviewCoverage:  round1(reviewCoverageScore(reviews)),
		CommitFrequency: round1(commitFrequencyScore(commits)),
	}
}

// DXIScore computes the weighted composite from the unrounded dimension
// scores, then rounds once to one decimal.
func DXIScore(m *schema.DeveloperMetrics) float64 {
	review, cycle, size, reviews, commits := rawInputs(m)
	composite := weightReviewSpeed*reviewSpeedScore(review) +
		weightCycleTime*cycleTimeScore(cycle) +
		weightPRSize*prSizeScore(size) +
		weightReviewCoverage*reviewCoverageScore(reviews) +
		weightCommitFrequency*commitFrequencyScore(commits)
	return round1(composite)
}

// TeamDimensionScores averages each raw input across developers first,
// skipping nil latency averages, then applies the same transforms. A
// dimension with no valid samples scores the neutral midpoint, as does
// everything when there are no developers at all.
func TeamDimensionScores(developers []schema.DeveloperMetrics) schema.DimensionScores {
	if len(developers) == 0 {
		return schema.DimensionScores{
			ReviewSpeed:     neutralScore,
			CycleTime:       neutralScore,
			PRSize:          neutralScore,
			ReviewCoverage:  neutralScore,
			CommitFrequency: neutralScore,
		}
	}

	var reviewSum, cycleSum float64
	var reviewN, cycleN int
	var sizeSum, reviewsSum, commitsSum float64
	for i := range developers {
		d := &developers[i]
		if d.AvgReviewTimeHours != nil {
			reviewSum += *d.AvgReviewTimeHours
			reviewN++
		}
		if d.AvgCycleTimeHours != nil {
			cycleSum += *d.AvgCycleTimeHours
			cycleN++
		}
		prs := d.PRsOpened
		if prs < 1 {
			prs = 1
		}
		sizeSum += float64(d.LinesAdded+d.LinesDeleted) / float64(prs)
		reviewsSum += float64(d.ReviewsGiven)
		commitsSum += float64(d.Commits)
	}

	n := float64(len(developers))
	scores := schema.DimensionScores{
		ReviewSpeed:     neutralScore,
		CycleTime:       neutralScore,
		PRSize:          round1(prSizeScore(sizeSum / n)),
		ReviewCoverage:  round1(reviewCoverageScore(reviewsSum / n)),
		CommitFrequency: round1(commitFrequencyScore(commitsSum / n)),
	}
	if reviewN > 0 {
		if avg := reviewSum / float64(reviewN); avg != 0 {
			scores.ReviewSpeed = round1(reviewSpeedScore(avg))
		}
	}
	if cycleN > 0 {
		if avg := cycleSum / float64(cycleN); avg != 0 {
			scores.CycleTime = round1(cycleTimeScore(avg))
		}
	}
	return scores
}
