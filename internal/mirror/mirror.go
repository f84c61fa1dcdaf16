// Package mirror maintains live in-memory copies of the four store
// tables. Any table-change event triggers a full refetch of all four;
// consumers read eventually consistent snapshots, never raw events.
package mirror

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/repository"
)

// Sources bundles the table readers the mirror refreshes from.
type Sources struct {
	Departments repository.DepartmentRepository
	Locations   repository.LocationRepository
	Inspections repository.InspectionRepository
	Users       repository.AppUserRepository
}

// Mirror holds the four collections behind a single RWMutex. One writer
// (the refresh loop), many readers.
type Mirror struct {
	sources    Sources
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu          sync.RWMutex
	departments []domain.Department
	locations   []domain.Location
	inspections []domain.Inspection
	users       []domain.AppUser

	unsubscribe func()
	done        chan struct{}
	closeOnce   sync.Once
}

// New builds a mirror; Start must be called before snapshots are fresh.
func New(sources Sources, dispatcher events.Dispatcher, logger *zap.Logger) *Mirror {
	return &Mirror{
		sources:    sources,
		dispatcher: dispatcher,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Start performs the initial fetch, subscribes to change notifications
// and launches the refresh loop. The loop stops when ctx is cancelled
// or Close is called.
func (m *Mirror) Start(ctx context.Context) error {
	if err := m.Refresh(ctx); err != nil {
		return err
	}

	ch, cancel, err := m.dispatcher.Subscribe(ctx)
	if err != nil {
		return err
	}
	m.unsubscribe = cancel

	go m.run(ctx, ch)
	return nil
}

func (m *Mirror) run(ctx context.Context, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := m.Refresh(ctx); err != nil {
				m.logger.Warn("mirror refresh failed",
					zap.String("table", string(event.Table)),
					zap.Error(err))
			}
		}
	}
}

// Refresh refetches all four tables and swaps the snapshots in one
// critical section. Inspections arrive date-ascending from the store.
func (m *Mirror) Refresh(ctx context.Context) error {
	departments, err := m.sources.Departments.List(ctx)
	if err != nil {
		return err
	}
	locations, err := m.sources.Locations.List(ctx)
	if err != nil {
		return err
	}
	inspections, err := m.sources.Inspections.List(ctx)
	if err != nil {
		return err
	}
	users, err := m.sources.Users.List(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.departments = departments
	m.locations = locations
	m.inspections = inspections
	m.users = users
	m.mu.Unlock()
	return nil
}

// Close stops the refresh loop and releases the subscription. Safe to
// call more than once.
func (m *Mirror) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
	})
}

// Departments returns a copy of the department snapshot.
func (m *Mirror) Departments() []domain.Department {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Department(nil), m.departments...)
}

// Locations returns a copy of the location snapshot.
func (m *Mirror) Locations() []domain.Location {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Location(nil), m.locations...)
}

// Inspections returns a copy of the inspection snapshot, ordered by
// date ascending.
func (m *Mirror) Inspections() []domain.Inspection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Inspection(nil), m.inspections...)
}

// Users returns a copy of the profile snapshot.
func (m *Mirror) Users() []domain.AppUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.AppUser(nil), m.users...)
}
