package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRechargeNotFound = errors.New("recharge_request_not_found")
)

// Repository is the storage port for the ledger and its adjacent financial
// records. Entries are append-only: there is no update or delete.
type Repository interface {
	AppendEntry(ctx context.Context, entry *Entry) error
	Entries(ctx context.Context) ([]Entry, error)
	EntriesByMarketer(ctx context.Context, marketerID string) ([]Entry, error)
	CommissionsByMarketer(ctx context.Context, marketerID string) ([]Entry, error)

	RechargeRequests(ctx context.Context) ([]RechargeRequest, error)
	RechargeRequestsByCafeteria(ctx context.Context, cafeteriaID string) ([]RechargeRequest, error)
	FindRechargeRequest(ctx context.Context, id string) (*RechargeRequest, error)
	CreateRechargeRequest(ctx context.Context, request *RechargeRequest) error
	UpdateRechargeRequestStatus(ctx context.Context, id string, status RechargeStatus, processedAt time.Time, notes string) (*RechargeRequest, error)

	PayoutRecords(ctx context.Context) ([]PayoutRecord, error)
	PayoutsByMarketer(ctx context.Context, marketerID string) ([]PayoutRecord, error)
	CreatePayoutRecord(ctx context.Context, record *PayoutRecord) error
}
