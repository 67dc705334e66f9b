package core

import (
	"context"
	"sync"
	"time"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"go.uber.org/zap"
)

// repoCacheTTL bounds how long the in-memory repository list is reused
// before the organization is queried again.
const repoCacheTTL = time.Hour

// repoListCache holds the short-lived organization repository list. It is
// owned by the Fetcher, never shared process-wide, and separate from the
// durable sprint store.
type repoListCache struct {
	mu        sync.Mutex
	repos     []schema.RepositoryRef
	fetchedAt time.Time
}

// Fetcher reconstructs complete, windowed activity datasets from the
// cursor-paginated remote API. Each FetchAllMetrics call runs sequential,
// blocking page fetches; parallelism across windows belongs to callers.
type Fetcher struct {
	cfg    *contract.Config
	client contract.GraphQLClient
	log    *zap.Logger
	repos  repoListCache
}

// NewFetcher creates a fetcher over the given client.
func NewFetcher(cfg *contract.Config, client contract.GraphQLClient, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{cfg: cfg, client: client, log: log}
}

// FetchAllMetrics retrieves and folds all activity for one sprint window.
// Remote failures degrade to partial or empty data; the call itself
// always completes with a well-formed result.
func (f *Fetcher) FetchAllMetrics(ctx context.Context, window schema.SprintWindow) *schema.MetricsResult {
	// Step 1: all organization repositories.
	repos := f.fetchRepositories(ctx)
	if len(repos) == 0 {
		return finalizeEmpty()
	}

	// Step 2: filter to the active set for this window.
	active := activeRepositories(repos, window)
	if len(active) == 0 {
		return finalizeEmpty()
	}
	f.log.Info("fetching sprint activity",
		zap.String("sprint", window.Key()), zap.Int("active_repos", len(active)))

	// Step 3: pull requests per active repository, window-filtered.
	var prs []schema.PullRequest
	for _, repo := range active {
		nodes := FetchAllPages(ctx, f.client, f.log, f.cfg.MaxPages, prsQuery,
			map[string]any{"owner": f.cfg.Org, "repo": repo.Name},
			[]string{"repository", "pullRequests"})
		for _, node := range nodes {
			pr := decodePullRequest(node, repo.Name)
			created := dateOf(pr.CreatedAt)
			if created >= window.Start && created <= window.End {
				prs = append(prs, pr)
			}
		}
	}

	// Step 4: reviews per retained PR. This dependent fan-out is the
	// dominant latency driver; no batching is attempted.
	for i := range prs {
		nodes := FetchAllPages(ctx, f.client, f.log, f.cfg.MaxPages, reviewsQuery,
			map[string]any{"owner": f.cfg.Org, "repo": prs[i].Repo, "prNumber": prs[i].Number},
			[]string{"repository", "pullRequest", "reviews"})
		for _, node := range nodes {
			prs[i].Reviews = append(prs[i].Reviews, decodeReview(node))
		}
	}

	// Step 5: default-branch commits per active repository.
	var commits []schema.Commit
	sinceISO := window.Start + "T00:00:00Z"
	for _, repo := range active {
		nodes := FetchAllPages(ctx, f.client, f.log, f.cfg.MaxPages, commitsQuery,
			map[string]any{"owner": f.cfg.Org, "repo": repo.Name, "since": sinceISO},
			[]string{"repository", "defaultBranchRef", "target", "history"})
		for _, node := range nodes {
			commits = append(commits, decodeCommit(node))
		}
	}

	// Step 6: fold into per-developer and per-day aggregates.
	agg := newAggregator(window)
	for _, pr := range prs {
		agg.AddPullRequest(pr)
	}
	for _, c := range commits {
		agg.AddCommit(c)
	}
	return agg.Result()
}

// fetchRepositories returns the organization repository list, reusing the
// in-memory copy while it is fresh.
func (f *Fetcher) fetchRepositories(ctx context.Context) []schema.RepositoryRef {
	f.repos.mu.Lock()
	defer f.repos.mu.Unlock()

	if f.repos.repos != nil && time.Since(f.repos.fetchedAt) < repoCacheTTL {
		return f.repos.repos
	}

	nodes := FetchAllPages(ctx, f.client, f.log, f.cfg.MaxPages, reposQuery,
		map[string]any{"org": f.cfg.Org},
		[]string{"organization", "repositories"})
	if len(nodes) == 0 {
		// Do not cache failures; the next call should retry.
		return nil
	}

	repos := make([]schema.RepositoryRef, 0, len(nodes))
	for _, node := range nodes {
		repos = append(repos, decodeRepository(node))
	}
	f.repos.repos = repos
	f.repos.fetchedAt = time.Now()
	return repos
}

// activeRepositories filters to repositories that can have contributed to
// the window: not archived, not a fork, pushed on or after window start.
func activeRepositories(repos []schema.RepositoryRef, window schema.SprintWindow) []schema.RepositoryRef {
	var active []schema.RepositoryRef
	for _, r := range repos {
		if r.IsArchived || r.IsFork {
			continue
		}
		if dateOf(r.PushedAt) >= window.Start {
			active = append(active, r)
		}
	}
	return active
}

// finalizeEmpty is the canonical result for a window with no activity.
func finalizeEmpty() *schema.MetricsResult {
	result := schema.EmptyMetricsResult()
	team := TeamDimensionScores(result.Developers)
	result.TeamDimensionScores = &team
	return result
}
