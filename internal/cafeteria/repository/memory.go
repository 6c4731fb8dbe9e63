package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cafeledger/cafeledger/internal/cafeteria/domain"
)

type memoryRepo struct {
	mu                sync.RWMutex
	cafeterias        []domain.Cafeteria
	menuCategories    []domain.MenuCategory
	menuItems         []domain.MenuItem
	waiterSections    []domain.WaiterSection
	waiterTables      []domain.WaiterTable
	kitchenCategories []domain.KitchenCategory
}

func NewMemory() domain.Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]domain.Cafeteria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Cafeteria, len(r.cafeterias))
	copy(out, r.cafeterias)
	return out, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*domain.Cafeteria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(id), nil
}

func (r *memoryRepo) findLocked(id string) *domain.Cafeteria {
	for i := range r.cafeterias {
		if r.cafeterias[i].ID == id {
			c := r.cafeterias[i]
			return &c
		}
	}
	return nil
}

// Wipe clears cafeterias and the whole nested registry. Sandbox reset only.
func (r *memoryRepo) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cafeterias = nil
	r.menuCategories = nil
	r.menuItems = nil
	r.waiterSections = nil
	r.waiterTables = nil
	r.kitchenCategories = nil
}

func (r *memoryRepo) Create(ctx context.Context, cafe *domain.Cafeteria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cafeterias = append(r.cafeterias, *cafe)
	return nil
}

func (r *memoryRepo) AdjustPoints(ctx context.Context, id string, delta int64) (*domain.Cafeteria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cafeterias {
		if r.cafeterias[i].ID != id {
			continue
		}
		if r.cafeterias[i].Points+delta < 0 {
			return nil, domain.ErrInsufficientPoints
		}
		r.cafeterias[i].Points += delta
		r.cafeterias[i].UpdatedAt = time.Now().UTC()
		c := r.cafeterias[i]
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) UpdateTrialOverride(ctx context.Context, id string, trialDays *int) (*domain.Cafeteria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cafeterias {
		if r.cafeterias[i].ID == id {
			r.cafeterias[i].TrialDaysOverride = trialDays
			r.cafeterias[i].UpdatedAt = time.Now().UTC()
			c := r.cafeterias[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) SetTrialExpired(ctx context.Context, id string, expired bool) (*domain.Cafeteria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cafeterias {
		if r.cafeterias[i].ID == id {
			r.cafeterias[i].IsTrialExpired = expired
			r.cafeterias[i].UpdatedAt = time.Now().UTC()
			c := r.cafeterias[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) MenuCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MenuCategory, len(r.menuCategories))
	copy(out, r.menuCategories)
	return out, nil
}

func (r *memoryRepo) AddMenuCategory(ctx context.Context, category *domain.MenuCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menuCategories = append(r.menuCategories, *category)
	return nil
}

func (r *memoryRepo) MenuItemsByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.MenuItem
	for i := range r.menuItems {
		if r.menuItems[i].CategoryID == categoryID {
			out = append(out, r.menuItems[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) MenuItemByID(ctx context.Context, itemID string) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.menuItems {
		if r.menuItems[i].ID == itemID {
			item := r.menuItems[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) AddMenuItem(ctx context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menuItems = append(r.menuItems, *item)
	return nil
}

func (r *memoryRepo) UpdateMenuItemKitchenCategory(ctx context.Context, itemID, kitchenCategoryID string) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.menuItems {
		if r.menuItems[i].ID == itemID {
			kc := kitchenCategoryID
			r.menuItems[i].KitchenCategoryID = &kc
			item := r.menuItems[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) MenuItemsByKitchenCategory(ctx context.Context, kitchenCategoryID string) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.MenuItem
	for i := range r.menuItems {
		if r.menuItems[i].KitchenCategoryID != nil && *r.menuItems[i].KitchenCategoryID == kitchenCategoryID {
			out = append(out, r.menuItems[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) WaiterSections(ctx context.Context, cafeteriaID string) ([]domain.WaiterSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.WaiterSection
	for i := range r.waiterSections {
		if r.waiterSections[i].CafeteriaID == cafeteriaID {
			out = append(out, r.waiterSections[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) AddWaiterSection(ctx context.Context, section *domain.WaiterSection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiterSections = append(r.waiterSections, *section)
	return nil
}

func (r *memoryRepo) WaiterTables(ctx context.Context, cafeteriaID string) ([]domain.WaiterTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.WaiterTable
	for i := range r.waiterTables {
		if r.waiterTables[i].CafeteriaID == cafeteriaID {
			out = append(out, r.waiterTables[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) AddWaiterTable(ctx context.Context, table *domain.WaiterTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiterTables = append(r.waiterTables, *table)
	return nil
}

func (r *memoryRepo) UpdateWaiterTableStatus(ctx context.Context, tableID string, isActive bool) (*domain.WaiterTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.waiterTables {
		if r.waiterTables[i].ID == tableID {
			r.waiterTables[i].IsActive = isActive
			table := r.waiterTables[i]
			return &table, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) KitchenCategories(ctx context.Context, cafeteriaID string) ([]domain.KitchenCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.KitchenCategory
	for i := range r.kitchenCategories {
		if r.kitchenCategories[i].CafeteriaID == cafeteriaID {
			out = append(out, r.kitchenCategories[i])
		}
	}
	return out, nil
}

func (r *memoryRepo) AddKitchenCategory(ctx context.Context, category *domain.KitchenCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kitchenCategories = append(r.kitchenCategories, *category)
	return nil
}
