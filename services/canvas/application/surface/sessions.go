package surface

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/pkg/logger"
	appsvcs "github.com/ghuser/mediaboard/services/canvas/application/services"
	canvasdomain "github.com/ghuser/mediaboard/services/canvas/domain"
	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
)

const (
	// DefaultIdleTTL evicts surfaces nobody has touched for this long.
	DefaultIdleTTL = 30 * time.Minute

	sweepInterval = time.Minute
)

// Sessions holds the open surfaces, keyed by session id. Surfaces idle for
// longer than the TTL are evicted by a janitor goroutine.
type Sessions struct {
	mu       sync.Mutex
	surfaces map[uuid.UUID]*Surface

	items    *appsvcs.ItemStores
	creation *appsvcs.CreationService
	ttl      time.Duration
	log      logger.Logger

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSessions starts the janitor. Call Close to stop it.
func NewSessions(items *appsvcs.ItemStores, creation *appsvcs.CreationService, ttl time.Duration, log logger.Logger) *Sessions {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	s := &Sessions{
		surfaces: make(map[uuid.UUID]*Surface),
		items:    items,
		creation: creation,
		ttl:      ttl,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.janitor(min(sweepInterval, ttl))
	return s
}

// Open creates a surface on the project and loads its items. A failed load
// still opens the surface; it renders empty until the next refresh succeeds.
func (s *Sessions) Open(ctx context.Context, projectID uuid.UUID, origin geometry.Point, view geometry.Size) *Surface {
	id := uuid.New()
	sf := New(id, s.items.ForProject(projectID), s.items.Registry(), s.creation, origin, view, s.log)
	if err := sf.Refresh(ctx); err != nil {
		s.log.WarnContext(ctx, "initial canvas load failed", "canvas_session", id, "error", err)
	}

	s.mu.Lock()
	s.surfaces[id] = sf
	s.mu.Unlock()

	s.log.InfoContext(ctx, "canvas session opened", "canvas_session", id, "project_id", projectID)
	return sf
}

// Get returns the surface or ErrSessionNotFound.
func (s *Sessions) Get(id uuid.UUID) (*Surface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, ok := s.surfaces[id]
	if !ok {
		return nil, canvasdomain.ErrSessionNotFound
	}
	return sf, nil
}

// Remove tears a surface down. An armed or running drag is released first so
// a started drag still commits.
func (s *Sessions) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	sf, ok := s.surfaces[id]
	delete(s.surfaces, id)
	s.mu.Unlock()

	if !ok {
		return canvasdomain.ErrSessionNotFound
	}
	sf.PointerLeave(ctx)
	s.log.InfoContext(ctx, "canvas session closed", "canvas_session", id)
	return nil
}

// Len is the number of open surfaces.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.surfaces)
}

// Sweep evicts surfaces idle since before now minus the TTL and returns how
// many it removed. Evicted surfaces are released like Remove, so a running
// drag still commits.
func (s *Sessions) Sweep(now time.Time) int {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	open := make(map[uuid.UUID]*Surface, len(s.surfaces))
	for id, sf := range s.surfaces {
		open[id] = sf
	}
	s.mu.Unlock()

	var evicted []*Surface
	for id, sf := range open {
		if !sf.LastUsed().Before(cutoff) {
			continue
		}
		s.mu.Lock()
		if s.surfaces[id] == sf {
			delete(s.surfaces, id)
			evicted = append(evicted, sf)
		}
		s.mu.Unlock()
	}

	for _, sf := range evicted {
		sf.PointerLeave(context.Background())
		s.log.Info("canvas session evicted", "canvas_session", sf.ID(), "idle_ttl", s.ttl)
	}
	return len(evicted)
}

// Close stops the janitor and releases every surface.
func (s *Sessions) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done

		s.mu.Lock()
		open := s.surfaces
		s.surfaces = make(map[uuid.UUID]*Surface)
		s.mu.Unlock()

		for _, sf := range open {
			sf.PointerLeave(context.Background())
		}
	})
}

func (s *Sessions) janitor(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.Sweep(now)
		case <-s.stop:
			return
		}
	}
}
