package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/florabot/backend/internal/domain"
	"github.com/florabot/backend/internal/usecase"
)

// snapshot is one immutable catalog load. Readers always see a whole
// table; refreshes build a new snapshot and swap the pointer.
type snapshot struct {
	rows     []domain.CatalogRow
	loadedAt time.Time
}

// Store is the process-wide catalog cache. A refresh is triggered when
// a read finds the snapshot older than the TTL; on refresh failure the
// stale snapshot keeps being served, and an error surfaces only when no
// catalog was ever loaded. Two concurrent readers may both decide to
// refresh and both fetch; that duplicate fetch is harmless and cheaper
// than holding a lock across the network call.
type Store struct {
	source domain.CatalogSource
	ttl    time.Duration
	log    *logrus.Entry

	mu   sync.RWMutex
	snap *snapshot
}

// NewStore creates a catalog store over the given source.
func NewStore(source domain.CatalogSource, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}

	return &Store{
		source: source,
		ttl:    ttl,
		log:    logrus.WithField("component", "catalog"),
	}
}

// Rows returns the current catalog, refreshing it first when the cached
// copy is older than the TTL. Returned rows carry their precomputed
// search text.
func (s *Store) Rows(ctx context.Context) ([]domain.CatalogRow, error) {
	if snap := s.current(); snap != nil && time.Since(snap.loadedAt) < s.ttl {
		return snap.rows, nil
	}

	rows, err := s.source.FetchCatalog(ctx)
	if err != nil {
		if snap := s.current(); snap != nil {
			s.log.WithError(err).Warn("catalog refresh failed, serving stale copy")
			return snap.rows, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	// The source may reuse its backing memory across fetches, and the
	// previous snapshot may still share it with readers; compute search
	// text on our own copy only.
	rows = append([]domain.CatalogRow(nil), rows...)
	for i := range rows {
		rows[i].SearchText = usecase.Normalize(rows[i].Name + " | " + rows[i].Aliases)
	}

	s.mu.Lock()
	s.snap = &snapshot{rows: rows, loadedAt: time.Now()}
	s.mu.Unlock()

	s.log.WithField("rows", len(rows)).Info("catalog refreshed")
	return rows, nil
}

// LoadedAt reports when the current snapshot was taken, zero when no
// catalog has been loaded yet.
func (s *Store) LoadedAt() time.Time {
	if snap := s.current(); snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}

// Len reports the number of rows in the current snapshot.
func (s *Store) Len() int {
	if snap := s.current(); snap != nil {
		return len(snap.rows)
	}
	return 0
}

func (s *Store) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
