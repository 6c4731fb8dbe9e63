package repository

import (
	"context"
	"time"

	"github.com/cafeledger/cafeledger/internal/order/domain"
	"gorm.io/gorm"
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) domain.Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&o).Error
	if err != nil {
		return nil, err
	}
	if o.ID == "" {
		return nil, nil
	}
	return &o, nil
}

func (r *gormRepo) FindByCafeteria(ctx context.Context, cafeteriaID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Where("cafeteria_id = ?", cafeteriaID).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormRepo) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}
