package repository

import (
	"context"
	"time"

	"github.com/cafeledger/cafeledger/internal/ledger/domain"
	"gorm.io/gorm"
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) domain.Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) AppendEntry(ctx context.Context, entry *domain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormRepo) Entries(ctx context.Context) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.WithContext(ctx).Order("timestamp ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormRepo) EntriesByMarketer(ctx context.Context, marketerID string) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.WithContext(ctx).
		Where("marketer_id = ?", marketerID).
		Order("timestamp ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormRepo) CommissionsByMarketer(ctx context.Context, marketerID string) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.WithContext(ctx).
		Where("marketer_id = ? AND type = ?", marketerID, domain.EntryTypeCommissionCredit).
		Order("timestamp ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormRepo) RechargeRequests(ctx context.Context) ([]domain.RechargeRequest, error) {
	var requests []domain.RechargeRequest
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *gormRepo) RechargeRequestsByCafeteria(ctx context.Context, cafeteriaID string) ([]domain.RechargeRequest, error) {
	var requests []domain.RechargeRequest
	err := r.db.WithContext(ctx).
		Where("cafeteria_id = ?", cafeteriaID).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *gormRepo) FindRechargeRequest(ctx context.Context, id string) (*domain.RechargeRequest, error) {
	var request domain.RechargeRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&request).Error
	if err != nil {
		return nil, err
	}
	if request.ID == "" {
		return nil, nil
	}
	return &request, nil
}

func (r *gormRepo) CreateRechargeRequest(ctx context.Context, request *domain.RechargeRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *gormRepo) UpdateRechargeRequestStatus(ctx context.Context, id string, status domain.RechargeStatus, processedAt time.Time, notes string) (*domain.RechargeRequest, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.RechargeRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       status,
			"processed_at": processedAt,
			"notes":        notes,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindRechargeRequest(ctx, id)
}

func (r *gormRepo) PayoutRecords(ctx context.Context) ([]domain.PayoutRecord, error) {
	var records []domain.PayoutRecord
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormRepo) PayoutsByMarketer(ctx context.Context, marketerID string) ([]domain.PayoutRecord, error) {
	var records []domain.PayoutRecord
	err := r.db.WithContext(ctx).
		Where("marketer_id = ?", marketerID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormRepo) CreatePayoutRecord(ctx context.Context, record *domain.PayoutRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
