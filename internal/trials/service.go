package trials

import (
	"context"
	"time"

	"github.com/ZiggyLiu/clinical-study-visual/internal/registry"
	"github.com/ZiggyLiu/clinical-study-visual/pkg/logger"
)

// Searcher is the single-page registry surface the fetcher walks.
type Searcher interface {
	Search(ctx context.Context, page registry.SearchPage) (*registry.SearchResponse, error)
}

// Service runs the acquisition pipeline: paginated fetch, normalization, and
// TTL memoization of the resulting tables.
type Service struct {
	client    Searcher
	cache     *Cache
	pageSize  int
	pageDelay time.Duration
	logger    *logger.Logger
}

// NewService creates a trials service. pageSize is clamped to the registry
// maximum; pageDelay is the suspension between successive page requests.
func NewService(client Searcher, cache *Cache, pageSize int, pageDelay time.Duration, logger *logger.Logger) *Service {
	if pageSize <= 0 || pageSize > registry.MaxPageSize {
		pageSize = registry.MaxPageSize
	}
	return &Service{
		client:    client,
		cache:     cache,
		pageSize:  pageSize,
		pageDelay: pageDelay,
		logger:    logger.Named("trials-service"),
	}
}

// Fetch walks the registry's paginated search results for condition until
// maxRecords are accumulated or the registry runs out, normalizing each study
// into a TrialRecord. Any page failure aborts the whole fetch; there is no
// partial result and no internal retry.
func (s *Service) Fetch(ctx context.Context, condition string, maxRecords int) (TrialTable, error) {
	records := TrialTable{}
	var pageToken string
	requests := 0
	started := time.Now()

	for len(records) < maxRecords {
		size := s.pageSize
		if remaining := maxRecords - len(records); remaining < size {
			size = remaining
		}

		resp, err := s.client.Search(ctx, registry.SearchPage{
			Condition: condition,
			PageSize:  size,
			PageToken: pageToken,
		})
		if err != nil {
			s.logger.Error("Fetch aborted",
				logger.String("condition", condition),
				logger.Int("records_so_far", len(records)),
				logger.Error(err),
			)
			return nil, err
		}
		requests++

		for _, study := range resp.Studies {
			records = append(records, RecordFromStudy(study))
		}
		pageToken = resp.NextPageToken

		// Exhaustion is checked after the page is processed: a missing
		// continuation cursor or an empty page ends the walk.
		if pageToken == "" || len(resp.Studies) == 0 {
			break
		}

		if err := s.pause(ctx); err != nil {
			return nil, err
		}
	}

	// A final page may over-deliver relative to the remaining budget; the
	// table is sliced rather than re-requested.
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}

	s.logger.Info("Fetched trial records",
		logger.String("condition", condition),
		logger.Int("records", len(records)),
		logger.Int("requests", requests),
		logger.Duration("elapsed", time.Since(started)),
	)

	return records, nil
}

// CachedFetch returns the memoized table for (condition, maxRecords) while it
// is fresh, running a full Fetch and storing the result otherwise. Concurrent
// misses on one key may both fetch; the cache itself stays consistent.
func (s *Service) CachedFetch(ctx context.Context, condition string, maxRecords int) (TrialTable, error) {
	if table, ok := s.cache.Get(condition, maxRecords); ok {
		s.logger.Debug("Cache hit",
			logger.String("condition", condition),
			logger.Int("max_records", maxRecords),
		)
		return table, nil
	}

	table, err := s.Fetch(ctx, condition, maxRecords)
	if err != nil {
		return nil, err
	}

	s.cache.Put(condition, maxRecords, table)
	return table, nil
}

// pause waits out the inter-page delay unless the context ends first. The
// delay is a fixed courtesy to the upstream service, not a retry backoff.
func (s *Service) pause(ctx context.Context) error {
	if s.pageDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return &registry.TransportError{Err: ctx.Err()}
	case <-time.After(s.pageDelay):
		return nil
	}
}
