// Package seed populates the demo dataset used by the sandbox deployment
// mode. It writes through the repository ports, so it works against any
// backing store.
package seed

import (
	"context"

	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	"github.com/cafeledger/cafeledger/internal/clock"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Seeder struct {
	cafeterias cafedomain.Repository
	staff      staffdomain.Repository
	clock      clock.Clock
	log        *zap.Logger
}

type Params struct {
	fx.In

	Cafeterias cafedomain.Repository
	Staff      staffdomain.Repository
	Clock      clock.Clock
	Logger     *zap.Logger
}

func New(p Params) *Seeder {
	return &Seeder{
		cafeterias: p.Cafeterias,
		staff:      p.Staff,
		clock:      p.Clock,
		log:        p.Logger.Named("seed"),
	}
}

func strptr(s string) *string { return &s }

// Apply inserts the demo dataset. It assumes empty stores; callers wipe
// first when reseeding.
func (s *Seeder) Apply(ctx context.Context) error {
	now := s.clock.Now()

	cafeterias := []cafedomain.Cafeteria{
		{
			ID:             "100101",
			Name:           "Sandbox Cafeteria",
			Description:    "A cozy cafeteria serving fresh breakfast and lunch",
			Address:        "123 Main Street, Downtown",
			Phone:          "+1 (555) 123-4567",
			Latitude:       40.7128,
			Longitude:      -74.0060,
			IsOpen:         true,
			Points:         100000,
			Code:           "1001AB",
			MarketerID:     strptr("1001"),
			IsTrialExpired: false,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "100102",
			Name:           "City Center Cafe",
			Description:    "Modern cafe with specialty coffee and pastries",
			Address:        "456 Park Avenue, Midtown",
			Phone:          "+1 (555) 234-5678",
			Latitude:       40.7589,
			Longitude:      -73.9851,
			IsOpen:         true,
			Points:         150000,
			Code:           "1001AC",
			MarketerID:     strptr("1001"),
			IsTrialExpired: false,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	for i := range cafeterias {
		if err := s.cafeterias.Create(ctx, &cafeterias[i]); err != nil {
			return err
		}
	}

	sections := []cafedomain.WaiterSection{
		{ID: "sec-001", CafeteriaID: "100101", Name: "A", Description: "Section A"},
		{ID: "sec-002", CafeteriaID: "100101", Name: "B", Description: "Section B"},
		{ID: "sec-003", CafeteriaID: "100101", Name: "C", Description: "Section C"},
	}
	for i := range sections {
		if err := s.cafeterias.AddWaiterSection(ctx, &sections[i]); err != nil {
			return err
		}
	}

	tables := []cafedomain.WaiterTable{
		{ID: "tbl-001", CafeteriaID: "100101", SectionID: "sec-001", TableNumber: "A-01", Capacity: 2, ReferenceCode: "1001ABT01", IsActive: true},
		{ID: "tbl-002", CafeteriaID: "100101", SectionID: "sec-001", TableNumber: "A-02", Capacity: 4, ReferenceCode: "1001ABT02", IsActive: true},
		{ID: "tbl-003", CafeteriaID: "100101", SectionID: "sec-002", TableNumber: "B-01", Capacity: 2, ReferenceCode: "1001ABT03", IsActive: true},
		{ID: "tbl-004", CafeteriaID: "100101", SectionID: "sec-002", TableNumber: "B-02", Capacity: 6, ReferenceCode: "1001ABT04", IsActive: true},
		{ID: "tbl-005", CafeteriaID: "100101", SectionID: "sec-003", TableNumber: "C-01", Capacity: 4, ReferenceCode: "1001ABT05", IsActive: true},
	}
	for i := range tables {
		if err := s.cafeterias.AddWaiterTable(ctx, &tables[i]); err != nil {
			return err
		}
	}

	kitchenCategories := []cafedomain.KitchenCategory{
		{ID: "kcat-001", CafeteriaID: "100101", Name: "Hot", Description: "Hot dishes"},
		{ID: "kcat-002", CafeteriaID: "100101", Name: "Cold", Description: "Cold dishes"},
		{ID: "kcat-003", CafeteriaID: "100101", Name: "Drinks", Description: "Beverages"},
		{ID: "kcat-004", CafeteriaID: "100101", Name: "Desserts", Description: "Desserts"},
	}
	for i := range kitchenCategories {
		if err := s.cafeterias.AddKitchenCategory(ctx, &kitchenCategories[i]); err != nil {
			return err
		}
	}

	menuCategories := []cafedomain.MenuCategory{
		{ID: "cat-001", Name: "Breakfast", Description: "Start your day right"},
		{ID: "cat-002", Name: "Lunch", Description: "Hearty midday meals"},
		{ID: "cat-003", Name: "Drinks", Description: "Hot and cold beverages"},
	}
	for i := range menuCategories {
		if err := s.cafeterias.AddMenuCategory(ctx, &menuCategories[i]); err != nil {
			return err
		}
	}

	menuItems := []cafedomain.MenuItem{
		{ID: "item-001", CategoryID: "cat-001", Name: "Classic Breakfast", Description: "Eggs, bacon, toast", Price: 8.99, IsAvailable: true, KitchenCategoryID: strptr("kcat-001")},
		{ID: "item-002", CategoryID: "cat-001", Name: "Pancake Stack", Description: "Three fluffy pancakes", Price: 6.99, IsAvailable: true, KitchenCategoryID: strptr("kcat-001")},
		{ID: "item-003", CategoryID: "cat-002", Name: "Cheeseburger", Description: "Beef patty with cheese", Price: 11.99, IsAvailable: true, KitchenCategoryID: strptr("kcat-001")},
		{ID: "item-004", CategoryID: "cat-002", Name: "Caesar Salad", Description: "Romaine lettuce, parmesan", Price: 8.99, IsAvailable: true, KitchenCategoryID: strptr("kcat-002")},
		{ID: "item-005", CategoryID: "cat-003", Name: "Coffee", Description: "Freshly brewed coffee", Price: 2.99, IsAvailable: true, KitchenCategoryID: strptr("kcat-003")},
		{ID: "item-006", CategoryID: "cat-003", Name: "Orange Juice", Description: "Freshly squeezed", Price: 3.99, IsAvailable: true, KitchenCategoryID: strptr("kcat-003")},
	}
	for i := range menuItems {
		if err := s.cafeterias.AddMenuItem(ctx, &menuItems[i]); err != nil {
			return err
		}
	}

	staff := []staffdomain.Staff{
		{ID: "staff-001", CafeteriaID: "100101", Name: "John", Role: staffdomain.RoleWaiter, IsActive: true, CreatedAt: now},
		{ID: "staff-002", CafeteriaID: "100101", Name: "Jane", Role: staffdomain.RoleWaiter, IsActive: true, CreatedAt: now},
		{ID: "staff-003", CafeteriaID: "100101", Name: "Chef Mike", Role: staffdomain.RoleKitchen, IsActive: true, CreatedAt: now, KitchenCategoryID: strptr("kcat-001")},
		{ID: "staff-004", CafeteriaID: "100101", Name: "Chef Sarah", Role: staffdomain.RoleKitchen, IsActive: true, CreatedAt: now, KitchenCategoryID: strptr("kcat-002")},
	}
	for i := range staff {
		if err := s.staff.Create(ctx, &staff[i]); err != nil {
			return err
		}
	}

	s.log.Info("demo dataset seeded",
		zap.Int("cafeterias", len(cafeterias)),
		zap.Int("tables", len(tables)),
		zap.Int("staff", len(staff)),
	)
	return nil
}
