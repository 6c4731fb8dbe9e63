package repository

import (
	"context"
	"sync"

	"github.com/cafeledger/cafeledger/internal/securityevent/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	events []domain.Event // newest first
}

func NewMemory() domain.Repository {
	return &memoryRepo{}
}

// Wipe clears the audit trail. Sandbox reset only.
func (r *memoryRepo) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *memoryRepo) Log(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append([]domain.Event{*event}, r.events...)
	if len(r.events) > domain.MaxRetained {
		r.events = r.events[:domain.MaxRetained]
	}
	return nil
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *memoryRepo) FindByActor(ctx context.Context, actorID string) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Event
	for i := range r.events {
		if r.events[i].ActorID == actorID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}
