package repository

import (
	"context"

	"github.com/cafeledger/cafeledger/internal/staff/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) domain.Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) FindAll(ctx context.Context) ([]domain.Staff, error) {
	var staff []domain.Staff
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *gormRepo) FindByCafeteria(ctx context.Context, cafeteriaID string) ([]domain.Staff, error) {
	var staff []domain.Staff
	err := r.db.WithContext(ctx).
		Where("cafeteria_id = ?", cafeteriaID).
		Order("created_at ASC").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *gormRepo) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	var s domain.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == "" {
		return nil, nil
	}
	return &s, nil
}

func (r *gormRepo) Create(ctx context.Context, staff *domain.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *gormRepo) UpdateStatus(ctx context.Context, id string, isActive bool) (*domain.Staff, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Staff{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *gormRepo) SetWaiterSession(ctx context.Context, session domain.WaiterSession) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "waiter_id"}},
			UpdateAll: true,
		}).
		Create(&session).Error
}

func (r *gormRepo) WaiterSession(ctx context.Context, waiterID string) (*domain.WaiterSession, error) {
	var session domain.WaiterSession
	err := r.db.WithContext(ctx).Where("waiter_id = ?", waiterID).Limit(1).Find(&session).Error
	if err != nil {
		return nil, err
	}
	if session.WaiterID == "" {
		return nil, nil
	}
	return &session, nil
}

func (r *gormRepo) ClearWaiterSession(ctx context.Context, waiterID string) error {
	return r.db.WithContext(ctx).
		Where("waiter_id = ?", waiterID).
		Delete(&domain.WaiterSession{}).Error
}
