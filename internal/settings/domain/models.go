package domain

import (
	"context"
	"errors"
)

// CommissionConfig holds the three commission percentages applied at
// settlement. Whether they must sum to 100 is a policy decision enforced by
// the settings service, not by storage.
type CommissionConfig struct {
	ID                      int `json:"-" gorm:"primaryKey"`
	RateDirectParentPercent int `json:"rate_direct_parent_percent" gorm:"not null"`
	RateGrandparentPercent  int `json:"rate_grandparent_percent" gorm:"not null"`
	RateOwnerPercent        int `json:"rate_owner_percent" gorm:"not null"`
}

func (CommissionConfig) TableName() string { return "commission_config" }

// TrialConfig is the platform-wide trial default; per-cafeteria overrides
// live on the cafeteria record.
type TrialConfig struct {
	ID              int `json:"-" gorm:"primaryKey"`
	GlobalTrialDays int `json:"global_trial_days" gorm:"not null"`
}

func (TrialConfig) TableName() string { return "trial_config" }

var (
	ErrCommissionSumInvalid = errors.New("commission_rates_must_sum_to_100")
	ErrNegativeRate         = errors.New("commission_rate_negative")
	ErrInvalidTrialDays     = errors.New("trial_days_negative")
)

// Repository stores the two singleton config records.
type Repository interface {
	CommissionConfig(ctx context.Context) (CommissionConfig, error)
	UpdateCommissionConfig(ctx context.Context, cfg CommissionConfig) error
	TrialConfig(ctx context.Context) (TrialConfig, error)
	UpdateTrialConfig(ctx context.Context, cfg TrialConfig) error
}
