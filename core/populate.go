package core

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/opendxi/opendxi/schema"
)

// PopulateResult records the outcome of one sprint in a bulk population
// run.
type PopulateResult struct {
	Sprint     schema.Sprint
	Skipped    bool
	Developers int
	Elapsed    time.Duration
}

// Populate warms the store for the last count sprints using a bounded
// worker pool, one sprint per task. Windows share no mutable state, so
// they parallelize freely; the pool exists only to bound concurrent
// remote sessions. Unless force is set, sprints that already hold
// developer data are skipped without a remote call. Results come back in
// sprint order, newest first.
func (s *Service) Populate(ctx context.Context, count, workers int, force bool) []PopulateResult {
	sprints := s.AllSprints(count)
	if workers < 1 {
		workers = 1
	}

	results := make([]PopulateResult, len(sprints))
	taskCh := make(chan int, len(sprints))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for idx := range taskCh {
				results[idx] = s.populateOne(ctx, sprints[idx], force)
			}
		})
	}
	for idx := range sprints {
		taskCh <- idx
	}
	close(taskCh)
	wg.Wait()

	return results
}

func (s *Service) populateOne(ctx context.Context, sprint schema.Sprint, force bool) PopulateResult {
	window := sprint.Window()
	if !force && s.isPopulated(window) {
		return PopulateResult{Sprint: sprint, Skipped: true}
	}

	// The skip check already decided this window needs a fetch; without
	// forceRefresh the coordinator would hand back the stored empty entry.
	start := time.Now()
	metrics := s.GetMetricsForSprint(ctx, window, true)
	return PopulateResult{
		Sprint:     sprint,
		Developers: len(metrics.Developers),
		Elapsed:    time.Since(start),
	}
}

// isPopulated reports whether the store already holds a decodable entry
// with at least one developer for the window. Empty entries are treated
// as unpopulated so a rerun repairs windows that were fetched during an
// outage.
func (s *Service) isPopulated(window schema.SprintWindow) bool {
	payload, _, ok := s.store.Get(window.Key())
	if !ok {
		return false
	}
	var result schema.MetricsResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return false
	}
	return len(result.Developers) > 0
}
