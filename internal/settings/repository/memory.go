package repository

import (
	"context"
	"sync"

	"github.com/cafeledger/cafeledger/internal/settings/domain"
)

type memoryRepo struct {
	mu         sync.RWMutex
	commission domain.CommissionConfig
	trial      domain.TrialConfig
}

func NewMemory() domain.Repository {
	return &memoryRepo{
		commission: defaultCommission,
		trial:      defaultTrial,
	}
}

// Wipe restores both singletons to their defaults. Sandbox reset only.
func (r *memoryRepo) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commission = defaultCommission
	r.trial = defaultTrial
}

func (r *memoryRepo) CommissionConfig(ctx context.Context) (domain.CommissionConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commission, nil
}

func (r *memoryRepo) UpdateCommissionConfig(ctx context.Context, cfg domain.CommissionConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg.ID = singletonID
	r.commission = cfg
	return nil
}

func (r *memoryRepo) TrialConfig(ctx context.Context) (domain.TrialConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trial, nil
}

func (r *memoryRepo) UpdateTrialConfig(ctx context.Context, cfg domain.TrialConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg.ID = singletonID
	r.trial = cfg
	return nil
}
