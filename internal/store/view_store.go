package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"labportal/internal/observability/metrics"
	"labportal/internal/service/impl"
)

// ViewStore keeps one auth-page view per visitor id.
type ViewStore struct {
	mu    sync.RWMutex
	views map[string]*impl.View
	ttl   time.Duration
}

func NewViewStore(idleTTL time.Duration) *ViewStore {
	return &ViewStore{
		views: make(map[string]*impl.View),
		ttl:   idleTTL,
	}
}

func (s *ViewStore) Get(id string) (*impl.View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[id]
	return v, ok
}

// GetOrCreate returns the view for id, building it with factory on first use.
func (s *ViewStore) GetOrCreate(id string, factory func() *impl.View) *impl.View {
	if v, ok := s.Get(id); ok {
		return v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[id]; ok {
		return v
	}
	v := factory()
	s.views[id] = v
	metrics.ViewsActive.Set(float64(len(s.views)))
	return v
}

func (s *ViewStore) Delete(id string) {
	s.mu.Lock()
	v, ok := s.views[id]
	delete(s.views, id)
	n := len(s.views)
	s.mu.Unlock()
	if ok {
		v.Close()
	}
	metrics.ViewsActive.Set(float64(n))
}

func (s *ViewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}

// PurgeIdle drops views not touched within the idle TTL and returns how many
// were evicted. A zero TTL disables eviction.
func (s *ViewStore) PurgeIdle(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	var evicted []*impl.View
	for id, v := range s.views {
		if v.LastSeen().Before(cutoff) {
			evicted = append(evicted, v)
			delete(s.views, id)
		}
	}
	n := len(s.views)
	s.mu.Unlock()

	for _, v := range evicted {
		v.Close()
	}
	metrics.ViewsActive.Set(float64(n))
	return len(evicted)
}

// Run purges idle views every interval until ctx is done.
func (s *ViewStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.PurgeIdle(now); n > 0 {
				slog.Default().Debug("evicted idle views", "count", n, "remaining", s.Len())
			}
		}
	}
}
