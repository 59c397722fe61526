package memstore

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
	"github.com/Munyola/boostsrl/pkg/boostsrl/registry"
)

// Store is an in-memory implementation of registry.Store for tests.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]registry.Run
	entropy *ulid.MonotonicEntropy
}

// New creates a new in-memory registry.
func New() *Store {
	return &Store{
		runs:    make(map[string]registry.Run),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close implements registry.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a copy of the run under a fresh id.
func (s *Store) SaveRun(ctx context.Context, r registry.Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = ulid.MustNew(ulid.Now(), s.entropy).String()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Trees = append([]string(nil), r.Trees...)
	s.runs[r.ID] = r
	return r.ID, nil
}

// GetRun loads a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (registry.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return registry.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	r.Trees = append([]string(nil), r.Trees...)
	return r, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, target string) ([]registry.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []registry.RunSummary
	for _, r := range s.runs {
		if target != "" && r.Target != target {
			continue
		}
		out = append(out, registry.RunSummary{
			ID:        r.ID,
			Target:    r.Target,
			Trees:     len(r.Trees),
			CreatedAt: r.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
