package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cafeledger/cafeledger/internal/order/domain"
)

// memoryRepo is the sandbox/test implementation. Orders are stored in
// insertion order so reads are deterministic.
type memoryRepo struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewMemory() domain.Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) FindByCafeteria(ctx context.Context, cafeteriaID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Order
	for i := range r.orders {
		if r.orders[i].CafeteriaID == cafeteriaID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, *order)
	return nil
}

// Wipe clears all orders. Sandbox reset only.
func (r *memoryRepo) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now().UTC()
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}
