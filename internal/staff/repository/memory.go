package repository

import (
	"context"
	"sync"

	"github.com/cafeledger/cafeledger/internal/staff/domain"
)

type memoryRepo struct {
	mu       sync.RWMutex
	staff    []domain.Staff
	sessions map[string]domain.WaiterSession
}

func NewMemory() domain.Repository {
	return &memoryRepo{sessions: make(map[string]domain.WaiterSession)}
}

// Wipe clears staff and sessions. Sandbox reset only.
func (r *memoryRepo) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff = nil
	r.sessions = make(map[string]domain.WaiterSession)
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]domain.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Staff, len(r.staff))
	copy(out, r.staff)
	return out, nil
}

func (r *memoryRepo) FindByCafeteria(ctx context.Context, cafeteriaID string) ([]domain.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Staff
	for i := range r.staff {
		if r.staff[i].CafeteriaID == cafeteriaID {
			out = append(out, r.staff[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.staff {
		if r.staff[i].ID == id {
			s := r.staff[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) Create(ctx context.Context, staff *domain.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff = append(r.staff, *staff)
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id string, isActive bool) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.staff {
		if r.staff[i].ID == id {
			r.staff[i].IsActive = isActive
			s := r.staff[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) SetWaiterSession(ctx context.Context, session domain.WaiterSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.WaiterID] = session
	return nil
}

func (r *memoryRepo) WaiterSession(ctx context.Context, waiterID string) (*domain.WaiterSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[waiterID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r *memoryRepo) ClearWaiterSession(ctx context.Context, waiterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, waiterID)
	return nil
}
