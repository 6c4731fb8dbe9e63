package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cafeledger/cafeledger/internal/ledger/domain"
)

type memoryRepo struct {
	mu               sync.RWMutex
	entries          []domain.Entry
	rechargeRequests []domain.RechargeRequest
	payoutRecords    []domain.PayoutRecord
}

func NewMemory() domain.Repository {
	return &memoryRepo{}
}

// Wipe clears the ledger, recharge requests and payout records. Sandbox
// reset only.
func (r *memoryRepo) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.rechargeRequests = nil
	r.payoutRecords = nil
}

func (r *memoryRepo) AppendEntry(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryRepo) Entries(ctx context.Context) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *memoryRepo) EntriesByMarketer(ctx context.Context, marketerID string) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Entry
	for i := range r.entries {
		if r.entries[i].MarketerID != nil && *r.entries[i].MarketerID == marketerID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) CommissionsByMarketer(ctx context.Context, marketerID string) ([]domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Entry
	for i := range r.entries {
		e := &r.entries[i]
		if e.Type == domain.EntryTypeCommissionCredit && e.MarketerID != nil && *e.MarketerID == marketerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memoryRepo) RechargeRequests(ctx context.Context) ([]domain.RechargeRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RechargeRequest, len(r.rechargeRequests))
	copy(out, r.rechargeRequests)
	return out, nil
}

func (r *memoryRepo) RechargeRequestsByCafeteria(ctx context.Context, cafeteriaID string) ([]domain.RechargeRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.RechargeRequest
	for i := range r.rechargeRequests {
		if r.rechargeRequests[i].CafeteriaID == cafeteriaID {
			out = append(out, r.rechargeRequests[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) FindRechargeRequest(ctx context.Context, id string) (*domain.RechargeRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.rechargeRequests {
		if r.rechargeRequests[i].ID == id {
			request := r.rechargeRequests[i]
			return &request, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) CreateRechargeRequest(ctx context.Context, request *domain.RechargeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rechargeRequests = append(r.rechargeRequests, *request)
	return nil
}

func (r *memoryRepo) UpdateRechargeRequestStatus(ctx context.Context, id string, status domain.RechargeStatus, processedAt time.Time, notes string) (*domain.RechargeRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rechargeRequests {
		if r.rechargeRequests[i].ID == id {
			r.rechargeRequests[i].Status = status
			r.rechargeRequests[i].ProcessedAt = &processedAt
			r.rechargeRequests[i].Notes = notes
			request := r.rechargeRequests[i]
			return &request, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) PayoutRecords(ctx context.Context) ([]domain.PayoutRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.PayoutRecord, len(r.payoutRecords))
	copy(out, r.payoutRecords)
	return out, nil
}

func (r *memoryRepo) PayoutsByMarketer(ctx context.Context, marketerID string) ([]domain.PayoutRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.PayoutRecord
	for i := range r.payoutRecords {
		if r.payoutRecords[i].MarketerID == marketerID {
			out = append(out, r.payoutRecords[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) CreatePayoutRecord(ctx context.Context, record *domain.PayoutRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payoutRecords = append(r.payoutRecords, *record)
	return nil
}
