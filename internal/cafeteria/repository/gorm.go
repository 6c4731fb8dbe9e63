package repository

import (
	"context"
	"time"

	"github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	"gorm.io/gorm"
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) domain.Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) FindAll(ctx context.Context) ([]domain.Cafeteria, error) {
	var cafes []domain.Cafeteria
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}

func (r *gormRepo) FindByID(ctx context.Context, id string) (*domain.Cafeteria, error) {
	var c domain.Cafeteria
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == "" {
		return nil, nil
	}
	return &c, nil
}

func (r *gormRepo) Create(ctx context.Context, cafe *domain.Cafeteria) error {
	return r.db.WithContext(ctx).Create(cafe).Error
}

// AdjustPoints relies on a conditional update so two concurrent settlements
// can never drive the balance negative, transaction or not.
func (r *gormRepo) AdjustPoints(ctx context.Context, id string, delta int64) (*domain.Cafeteria, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE cafeterias
		 SET points = points + ?, updated_at = ?
		 WHERE id = ? AND points + ? >= 0`,
		delta,
		time.Now().UTC(),
		id,
		delta,
	)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrInsufficientPoints
	}
	return r.FindByID(ctx, id)
}

func (r *gormRepo) UpdateTrialOverride(ctx context.Context, id string, trialDays *int) (*domain.Cafeteria, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Cafeteria{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"trial_days_override": trialDays,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *gormRepo) SetTrialExpired(ctx context.Context, id string, expired bool) (*domain.Cafeteria, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Cafeteria{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_trial_expired": expired,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *gormRepo) MenuCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	var categories []domain.MenuCategory
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *gormRepo) AddMenuCategory(ctx context.Context, category *domain.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *gormRepo) MenuItemsByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormRepo) MenuItemByID(ctx context.Context, itemID string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).Limit(1).Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == "" {
		return nil, nil
	}
	return &item, nil
}

func (r *gormRepo) AddMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormRepo) UpdateMenuItemKitchenCategory(ctx context.Context, itemID, kitchenCategoryID string) (*domain.MenuItem, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.MenuItem{}).
		Where("id = ?", itemID).
		Update("kitchen_category_id", kitchenCategoryID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.MenuItemByID(ctx, itemID)
}

func (r *gormRepo) MenuItemsByKitchenCategory(ctx context.Context, kitchenCategoryID string) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := r.db.WithContext(ctx).Where("kitchen_category_id = ?", kitchenCategoryID).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormRepo) WaiterSections(ctx context.Context, cafeteriaID string) ([]domain.WaiterSection, error) {
	var sections []domain.WaiterSection
	err := r.db.WithContext(ctx).Where("cafeteria_id = ?", cafeteriaID).Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *gormRepo) AddWaiterSection(ctx context.Context, section *domain.WaiterSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *gormRepo) WaiterTables(ctx context.Context, cafeteriaID string) ([]domain.WaiterTable, error) {
	var tables []domain.WaiterTable
	err := r.db.WithContext(ctx).Where("cafeteria_id = ?", cafeteriaID).Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *gormRepo) AddWaiterTable(ctx context.Context, table *domain.WaiterTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *gormRepo) UpdateWaiterTableStatus(ctx context.Context, tableID string, isActive bool) (*domain.WaiterTable, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.WaiterTable{}).
		Where("id = ?", tableID).
		Update("is_active", isActive)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	var table domain.WaiterTable
	if err := r.db.WithContext(ctx).Where("id = ?", tableID).Limit(1).Find(&table).Error; err != nil {
		return nil, err
	}
	if table.ID == "" {
		return nil, nil
	}
	return &table, nil
}

func (r *gormRepo) KitchenCategories(ctx context.Context, cafeteriaID string) ([]domain.KitchenCategory, error) {
	var categories []domain.KitchenCategory
	err := r.db.WithContext(ctx).Where("cafeteria_id = ?", cafeteriaID).Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *gormRepo) AddKitchenCategory(ctx context.Context, category *domain.KitchenCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}
