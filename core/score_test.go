package core

import (
	"testing"

	"github.com/opendxi/opendxi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestDeveloperDimensionScores(t *testing.T) {
	tests := []struct {
		name     string
		metrics  schema.DeveloperMetrics
		expected schema.DimensionScores
	}{
		{
			name: "perfect sprint saturates every dimension",
			metrics: schema.DeveloperMetrics{
				Commits:            20,
				PRsOpened:          1,
				ReviewsGiven:       10,
				LinesAdded:         100,
				LinesDeleted:       100,
				AvgReviewTimeHours: floatPtr(2),
				AvgCycleTimeHours:  floatPtr(8),
			},
			expected: schema.DimensionScores{
				ReviewSpeed:     100,
				CycleTime:       100,
				PRSize:          100,
				ReviewCoverage:  100,
				CommitFrequency: 100,
			},
		},
		{
			name:    "zero activity falls back to latency defaults",
			metrics: schema.DeveloperMetrics{},
			expected: schema.DimensionScores{
				ReviewSpeed:     0,    // default 24h is the floor of the range
				CycleTime:       37.5, // default 48h
				PRSize:          100,  // zero lines over one implicit PR
				ReviewCoverage:  0,
				CommitFrequency: 0,
			},
		},
		{
			name: "mid-range values interpolate linearly",
			metrics: schema.DeveloperMetrics{
				Commits:            10,
				PRsOpened:          2,
				ReviewsGiven:       5,
				LinesAdded:         600,
				LinesDeleted:       200,
				AvgReviewTimeHours: floatPtr(13),
				AvgCycleTimeHours:  floatPtr(40),
			},
			expected: schema.DimensionScores{
				ReviewSpeed:     50,
				CycleTime:       50,
				PRSize:          75, // 400 avg lines
				ReviewCoverage:  50,
				CommitFrequency: 50,
			},
		},
		{
			name: "extreme values clamp to the bounds",
			metrics: schema.DeveloperMetrics{
				Commits:            1000,
				PRsOpened:          1,
				ReviewsGiven:       99,
				LinesAdded:         500000,
				AvgReviewTimeHours: floatPtr(10000),
				AvgCycleTimeHours:  floatPtr(-10000),
			},
			expected: schema.DimensionScores{
				ReviewSpeed:     0,
				CycleTime:       100,
				PRSize:          0,
				ReviewCoverage:  100,
				CommitFrequency: 100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeveloperDimensionScores(&tt.metrics))
		})
	}
}

func TestDXIScore(t *testing.T) {
	t.Run("perfect sprint scores 100", func(t *testing.T) {
		m := schema.DeveloperMetrics{
			Commits:            20,
			PRsOpened:          1,
			ReviewsGiven:       10,
			LinesAdded:         100,
			LinesDeleted:       100,
			AvgReviewTimeHours: floatPtr(2),
			AvgCycleTimeHours:  floatPtr(8),
		}
		assert.InDelta(t, 100.0, DXIScore(&m), 1e-9)
	})

	t.Run("zero activity uses latency defaults", func(t *testing.T) {
		m := schema.DeveloperMetrics{}
		// 0.25*0 + 0.25*37.5 + 0.20*100 + 0.15*0 + 0.15*0
		assert.InDelta(t, 29.4, DXIScore(&m), 1e-9)
	})

	t.Run("composite is the weighted sum of dimension scores", func(t *testing.T) {
		m := schema.DeveloperMetrics{
			Commits:            10,
			PRsOpened:          2,
			ReviewsGiven:       5,
			LinesAdded:         600,
			LinesDeleted:       200,
			AvgReviewTimeHours: floatPtr(13),
			AvgCycleTimeHours:  floatPtr(40),
		}
		scores := DeveloperDimensionScores(&m)
		recomputed := 0.25*scores.ReviewSpeed + 0.25*scores.CycleTime +
			0.20*scores.PRSize + 0.15*scores.ReviewCoverage + 0.15*scores.CommitFrequency
		assert.InDelta(t, DXIScore(&m), recomputed, 0.05)
	})
}

func TestTeamDimensionScores(t *testing.T) {
	t.Run("no developers yields the neutral midpoint", func(t *testing.T) {
		scores := TeamDimensionScores(nil)
		assert.Equal(t, schema.DimensionScores{
			ReviewSpeed:     50,
			CycleTime:       50,
			PRSize:          50,
			ReviewCoverage:  50,
			CommitFrequency: 50,
		}, scores)
	})

	t.Run("latency dimensions with no samples stay neutral", func(t *testing.T) {
		devs := []schema.DeveloperMetrics{
			{Commits: 10, PRsOpened: 1, LinesAdded: 100, ReviewsGiven: 2},
		}
		scores := TeamDimensionScores(devs)
		assert.InDelta(t, 50, scores.ReviewSpeed, 1e-9)
		assert.InDelta(t, 50, scores.CycleTime, 1e-9)
		assert.InDelta(t, 100, scores.PRSize, 1e-9)
		assert.InDelta(t, 20, scores.ReviewCoverage, 1e-9)
		assert.InDelta(t, 50, scores.CommitFrequency, 1e-9)
	})

	t.Run("averages raw inputs before transforming", func(t *testing.T) {
		devs := []schema.DeveloperMetrics{
			{
				PRsOpened:          1,
				LinesAdded:         100,
				ReviewsGiven:       10,
				Commits:            20,
				AvgReviewTimeHours: floatPtr(2),
				AvgCycleTimeHours:  floatPtr(8),
			},
			{
				PRsOpened:    1,
				LinesAdded:   300,
				ReviewsGiven: 0,
				Commits:      0,
				// nil latency averages are skipped, not zero-filled
			},
		}
		scores := TeamDimensionScores(devs)
		require.InDelta(t, 100, scores.ReviewSpeed, 1e-9) // avg over one sample: 2h
		require.InDelta(t, 100, scores.CycleTime, 1e-9)   // avg over one sample: 8h
		assert.InDelta(t, 100, scores.PRSize, 1e-9)       // mean of 100 and 300 lines
		assert.InDelta(t, 50, scores.ReviewCoverage, 1e-9)
		assert.InDelta(t, 50, scores.CommitFrequency, 1e-9)
	})
}
