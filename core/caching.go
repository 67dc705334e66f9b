package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"go.uber.org/zap"
)

// Service is the cache-or-fetch coordinator and the facade the CLI and
// MCP surfaces call into. The store is authoritative: once a window is
// populated its data never changes on its own; only an explicit force
// refresh overwrites it.
//
// Concurrent force refreshes for the same window are not deduplicated.
// Both fetch and the later save wins, which is acceptable because both
// results derive from the same remote state.
type Service struct {
	cfg     *contract.Config
	fetcher *Fetcher
	store   contract.SprintStore
	log     *zap.Logger
}

// NewService wires the coordinator over a fetcher and a store.
func NewService(cfg *contract.Config, fetcher *Fetcher, store contract.SprintStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, fetcher: fetcher, store: store, log: log}
}

// AllSprints lists the selectable sprint windows, newest first.
func (s *Service) AllSprints(limit int) []schema.Sprint {
	return AllSprints(s.cfg, limit, time.Now())
}

// GetMetricsForSprint returns the metrics for one window, serving from
// the store unless it misses or forceRefresh is set. Fetched results are
// persisted before returning; persistence failures are absorbed by the
// store so the result is returned either way.
func (s *Service) GetMetricsForSprint(ctx context.Context, window schema.SprintWindow, forceRefresh bool) *schema.MetricsResult {
	key := window.Key()

	if !forceRefresh {
		if payload, version, ok := s.store.Get(key); ok {
			var result schema.MetricsResult
			if err := json.Unmarshal(payload, &result); err != nil {
				s.log.Warn("discarding undecodable store entry",
					zap.String("sprint", key), zap.Error(err))
			} else {
				s.log.Debug("store hit", zap.String("sprint", key), zap.Int("version", version))
				upgradeMetricsPayload(&result)
				return &result
			}
		}
	}

	s.log.Info("fetching sprint from remote",
		zap.String("sprint", key), zap.Bool("force_refresh", forceRefresh))
	result := s.fetcher.FetchAllMetrics(ctx, window)

	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Warn("metrics payload not serializable, skipping save",
			zap.String("sprint", key), zap.Error(err))
		return result
	}
	s.store.Save(window, payload, schema.PayloadVersionCurrent)
	return result
}

// upgradeMetricsPayload repairs entries written before dimension scores
// were persisted, recomputing them from the stored aggregates on read.
// The repaired form is not written back; the row upgrades for real only
// on the next force refresh.
func upgradeMetricsPayload(result *schema.MetricsResult) {
	for i := range result.Developers {
		if result.Developers[i].DimensionScores == nil {
			scores := DeveloperDimensionScores(&result.Developers[i])
			result.Developers[i].DimensionScores = &scores
		}
	}
	if result.TeamDimensionScores == nil {
		team := TeamDimensionScores(result.Developers)
		result.TeamDimensionScores = &team
	}
}

// DeleteSprint removes one window from the store.
func (s *Service) DeleteSprint(window schema.SprintWindow) {
	s.store.Delete(window.Key())
}

// StoreStats reports the store's entry inventory.
func (s *Service) StoreStats() (schema.StoreStats, error) {
	return s.store.Stats()
}
