package core

import (
	"context"
	"testing"
	"time"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reposPath   = []string{"organization", "repositories"}
	reviewsPath = []string{"repository", "pullRequest", "reviews"}
	commitsPath = []string{"repository", "defaultBranchRef", "target", "history"}
)

func fetchTestConfig() *contract.Config {
	return &contract.Config{Org: "acme", MaxPages: 10}
}

func repoNode(name, pushedAt string, archived, fork bool) map[string]any {
	return map[string]any{
		"name":       name,
		"isArchived": archived,
		"isFork":     fork,
		"pushedAt":   pushedAt,
	}
}

func TestFetchAllMetricsNoRepositories(t *testing.T) {
	client := &stubClient{responses: []map[string]any{
		connectionPage(reposPath, nil, false, ""),
	}}
	f := NewFetcher(fetchTestConfig(), client, nil)

	result := f.FetchAllMetrics(context.Background(), testWindow)
	require.NotNil(t, result)
	assert.NotNil(t, result.Developers)
	assert.Empty(t, result.Developers)
	assert.NotNil(t, result.Daily)
	assert.Empty(t, result.Daily)
	assert.Zero(t, result.Summary.TotalCommits)
	require.NotNil(t, result.TeamDimensionScores)
	assert.Equal(t, 50.0, result.TeamDimensionScores.ReviewSpeed)
	assert.Len(t, client.calls, 1)
}

func TestFetchAllMetricsNoActiveRepositories(t *testing.T) {
	client := &stubClient{responses: []map[string]any{
		connectionPage(reposPath, []any{
			repoNode("attic", "2026-01-10T00:00:00Z", true, false),
			repoNode("mirror", "2026-01-10T00:00:00Z", false, true),
			repoNode("dormant", "2025-11-01T00:00:00Z", false, false),
		}, false, ""),
	}}
	f := NewFetcher(fetchTestConfig(), client, nil)

	result := f.FetchAllMetrics(context.Background(), testWindow)
	assert.Empty(t, result.Developers)
	assert.Len(t, client.calls, 1, "inactive repos must not be queried further")
}

func TestFetchAllMetricsPipeline(t *testing.T) {
	prNode := map[string]any{
		"number":    float64(7),
		"createdAt": "2026-01-10T10:00:00Z",
		"mergedAt":  "2026-01-11T10:00:00Z",
		"author":    map[string]any{"login": "alice"},
		"additions": float64(40),
		"deletions": float64(8),
	}
	reviewNode := map[string]any{
		"author":      map[string]any{"login": "bob"},
		"submittedAt": "2026-01-10T16:00:00Z",
		"state":       "APPROVED",
	}
	commitNode := map[string]any{
		"author": map[string]any{
			"user": map[string]any{"login": "alice"},
			"date": "2026-01-12T09:00:00Z",
		},
		"additions": float64(12),
		"deletions": float64(3),
	}
	staleNode := map[string]any{
		"number":    float64(8),
		"createdAt": "2025-12-30T10:00:00Z",
		"author":    map[string]any{"login": "alice"},
	}
	client := &stubClient{responses: []map[string]any{
		connectionPage(reposPath, []any{repoNode("widgets", "2026-01-15T00:00:00Z", false, false)}, false, ""),
		connectionPage(prPath, []any{prNode, staleNode}, false, ""),
		connectionPage(reviewsPath, []any{reviewNode}, false, ""),
		connectionPage(commitsPath, []any{commitNode}, false, ""),
	}}
	f := NewFetcher(fetchTestConfig(), client, nil)

	result := f.FetchAllMetrics(context.Background(), testWindow)
	require.Len(t, client.calls, 4)
	assert.Equal(t, "acme", client.calls[1]["owner"])
	assert.Equal(t, "widgets", client.calls[1]["repo"])
	assert.Equal(t, 7, client.calls[2]["prNumber"])
	assert.Equal(t, "2026-01-07T00:00:00Z", client.calls[3]["since"])

	require.Len(t, result.Developers, 2)
	byLogin := make(map[string]schema.DeveloperMetrics)
	for _, d := range result.Developers {
		byLogin[d.Developer] = d
	}
	alice := byLogin["alice"]
	assert.Equal(t, 1, alice.PRsOpened, "out-of-window PR must be dropped before folding")
	assert.Equal(t, 1, alice.PRsMerged)
	assert.Equal(t, 1, alice.Commits)
	assert.Equal(t, 52, alice.LinesAdded)
	assert.Equal(t, 11, alice.LinesDeleted)

	bob := byLogin["bob"]
	assert.Equal(t, 1, bob.ReviewsGiven)
	require.NotNil(t, bob.AvgReviewTimeHours)
	assert.InDelta(t, 6.0, *bob.AvgReviewTimeHours, 1e-9)

	assert.Equal(t, 1, result.Summary.TotalPRs)
	assert.Equal(t, 1, result.Summary.TotalReviews)
}

func TestFetchRepositoriesReusesFreshList(t *testing.T) {
	client := &stubClient{responses: []map[string]any{
		connectionPage(reposPath, []any{repoNode("widgets", "2026-01-15T00:00:00Z", false, false)}, false, ""),
	}}
	f := NewFetcher(fetchTestConfig(), client, nil)

	first := f.fetchRepositories(context.Background())
	second := f.fetchRepositories(context.Background())
	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Len(t, client.calls, 1, "fresh list must be reused without a remote call")
}

func TestFetchRepositoriesRefetchesAfterTTL(t *testing.T) {
	page := connectionPage(reposPath, []any{repoNode("widgets", "2026-01-15T00:00:00Z", false, false)}, false, "")
	client := &stubClient{responses: []map[string]any{page, page}}
	f := NewFetcher(fetchTestConfig(), client, nil)

	f.fetchRepositories(context.Background())
	f.repos.fetchedAt = time.Now().Add(-repoCacheTTL - time.Minute)
	f.fetchRepositories(context.Background())
	assert.Len(t, client.calls, 2)
}

func TestFetchRepositoriesDoesNotCacheFailure(t *testing.T) {
	client := &stubClient{
		responses: []map[string]any{
			nil,
			connectionPage(reposPath, []any{repoNode("widgets", "2026-01-15T00:00:00Z", false, false)}, false, ""),
		},
		errs: []error{errScripted("boom"), nil},
	}
	f := NewFetcher(fetchTestConfig(), client, nil)

	assert.Empty(t, f.fetchRepositories(context.Background()))
	assert.Len(t, f.fetchRepositories(context.Background()), 1)
	assert.Len(t, client.calls, 2)
}

func TestActiveRepositories(t *testing.T) {
	repos := []schema.RepositoryRef{
		{Name: "live", PushedAt: "2026-01-07T01:00:00Z"},
		{Name: "boundary", PushedAt: "2026-01-07T00:00:00Z"},
		{Name: "stale", PushedAt: "2026-01-06T23:59:59Z"},
		{Name: "attic", PushedAt: "2026-01-10T00:00:00Z", IsArchived: true},
		{Name: "mirror", PushedAt: "2026-01-10T00:00:00Z", IsFork: true},
	}
	active := activeRepositories(repos, testWindow)
	require.Len(t, active, 2)
	assert.Equal(t, "live", active[0].Name)
	assert.Equal(t, "boundary", active[1].Name)
}
