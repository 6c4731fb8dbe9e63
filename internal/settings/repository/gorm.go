package repository

import (
	"context"

	"github.com/cafeledger/cafeledger/internal/settings/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const singletonID = 1

// Defaults applied when no row exists yet.
var (
	defaultCommission = domain.CommissionConfig{
		ID:                      singletonID,
		RateDirectParentPercent: 10,
		RateGrandparentPercent:  5,
		RateOwnerPercent:        85,
	}
	defaultTrial = domain.TrialConfig{
		ID:              singletonID,
		GlobalTrialDays: 14,
	}
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) domain.Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) CommissionConfig(ctx context.Context) (domain.CommissionConfig, error) {
	var cfg domain.CommissionConfig
	err := r.db.WithContext(ctx).Where("id = ?", singletonID).Limit(1).Find(&cfg).Error
	if err != nil {
		return domain.CommissionConfig{}, err
	}
	if cfg.ID == 0 {
		return defaultCommission, nil
	}
	return cfg, nil
}

func (r *gormRepo) UpdateCommissionConfig(ctx context.Context, cfg domain.CommissionConfig) error {
	cfg.ID = singletonID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&cfg).Error
}

func (r *gormRepo) TrialConfig(ctx context.Context) (domain.TrialConfig, error) {
	var cfg domain.TrialConfig
	err := r.db.WithContext(ctx).Where("id = ?", singletonID).Limit(1).Find(&cfg).Error
	if err != nil {
		return domain.TrialConfig{}, err
	}
	if cfg.ID == 0 {
		return defaultTrial, nil
	}
	return cfg, nil
}

func (r *gormRepo) UpdateTrialConfig(ctx context.Context, cfg domain.TrialConfig) error {
	cfg.ID = singletonID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&cfg).Error
}
