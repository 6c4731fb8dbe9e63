package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("cafeteria_not_found")
	ErrInsufficientPoints = errors.New("insufficient_points")
)

// Repository is the storage port for cafeterias and their nested registry
// (menu, sections, tables, kitchen categories). Find* return (nil, nil) on a
// miss.
type Repository interface {
	FindAll(ctx context.Context) ([]Cafeteria, error)
	FindByID(ctx context.Context, id string) (*Cafeteria, error)
	Create(ctx context.Context, cafe *Cafeteria) error

	// AdjustPoints applies delta atomically and fails with
	// ErrInsufficientPoints when the balance would go negative, even under
	// concurrent settlement.
	AdjustPoints(ctx context.Context, id string, delta int64) (*Cafeteria, error)
	UpdateTrialOverride(ctx context.Context, id string, trialDays *int) (*Cafeteria, error)
	SetTrialExpired(ctx context.Context, id string, expired bool) (*Cafeteria, error)

	MenuCategories(ctx context.Context) ([]MenuCategory, error)
	AddMenuCategory(ctx context.Context, category *MenuCategory) error
	MenuItemsByCategory(ctx context.Context, categoryID string) ([]MenuItem, error)
	MenuItemByID(ctx context.Context, itemID string) (*MenuItem, error)
	AddMenuItem(ctx context.Context, item *MenuItem) error
	UpdateMenuItemKitchenCategory(ctx context.Context, itemID, kitchenCategoryID string) (*MenuItem, error)
	MenuItemsByKitchenCategory(ctx context.Context, kitchenCategoryID string) ([]MenuItem, error)

	WaiterSections(ctx context.Context, cafeteriaID string) ([]WaiterSection, error)
	AddWaiterSection(ctx context.Context, section *WaiterSection) error

	WaiterTables(ctx context.Context, cafeteriaID string) ([]WaiterTable, error)
	AddWaiterTable(ctx context.Context, table *WaiterTable) error
	UpdateWaiterTableStatus(ctx context.Context, tableID string, isActive bool) (*WaiterTable, error)

	KitchenCategories(ctx context.Context, cafeteriaID string) ([]KitchenCategory, error)
	AddKitchenCategory(ctx context.Context, category *KitchenCategory) error
}
