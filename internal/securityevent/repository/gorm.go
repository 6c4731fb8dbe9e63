package repository

import (
	"context"

	"github.com/cafeledger/cafeledger/internal/securityevent/domain"
	"gorm.io/gorm"
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) domain.Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Log(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		// Keep only the most recent MaxRetained rows.
		sub := tx.Model(&domain.Event{}).
			Select("id").
			Order("timestamp DESC, id DESC").
			Limit(domain.MaxRetained)
		return tx.Where("id NOT IN (?)", sub).Delete(&domain.Event{}).Error
	})
}

func (r *gormRepo) FindAll(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *gormRepo) FindByActor(ctx context.Context, actorID string) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("timestamp DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
