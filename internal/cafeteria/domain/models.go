package domain

import "time"

// Cafeteria is a tenant. Points is the prepaid credit balance consumed per
// settled order; it is a cached running total kept consistent with the
// ledger by the orderflow service and must never go negative.
type Cafeteria struct {
	ID          string  `json:"id" gorm:"primaryKey;type:text"`
	Name        string  `json:"name" gorm:"type:text;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Address     string  `json:"address" gorm:"type:text"`
	Phone       string  `json:"phone" gorm:"type:text"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IsOpen      bool    `json:"is_open" gorm:"not null;default:true"`
	Points      int64   `json:"points" gorm:"not null;default:0"`

	// Code authenticates table QR payloads against this tenant.
	Code string `json:"code" gorm:"type:text;index"`

	MarketerID            *string `json:"marketer_id,omitempty" gorm:"type:text;index"`
	GrandparentMarketerID *string `json:"grandparent_marketer_id,omitempty" gorm:"type:text"`

	IsTrialExpired    bool      `json:"is_trial_expired" gorm:"not null;default:false"`
	TrialDaysOverride *int      `json:"trial_days_override,omitempty"`
	CreatedAt         time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"not null"`
}

func (Cafeteria) TableName() string { return "cafeterias" }

type MenuCategory struct {
	ID          string `json:"id" gorm:"primaryKey;type:text"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (MenuCategory) TableName() string { return "menu_categories" }

type MenuItem struct {
	ID                string  `json:"id" gorm:"primaryKey;type:text"`
	CategoryID        string  `json:"category_id" gorm:"type:text;not null;index"`
	Name              string  `json:"name" gorm:"type:text;not null"`
	Description       string  `json:"description" gorm:"type:text"`
	Price             float64 `json:"price" gorm:"not null"`
	IsAvailable       bool    `json:"is_available" gorm:"not null;default:true"`
	KitchenCategoryID *string `json:"kitchen_category_id,omitempty" gorm:"type:text;index"`
}

func (MenuItem) TableName() string { return "menu_items" }

type WaiterSection struct {
	ID          string `json:"id" gorm:"primaryKey;type:text"`
	CafeteriaID string `json:"cafeteria_id" gorm:"type:text;not null;index"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (WaiterSection) TableName() string { return "waiter_sections" }

// WaiterTable binds a physical table to a section. ReferenceCode is the
// stable token embedded in the table's QR payload.
type WaiterTable struct {
	ID            string `json:"id" gorm:"primaryKey;type:text"`
	CafeteriaID   string `json:"cafeteria_id" gorm:"type:text;not null;index"`
	SectionID     string `json:"section_id" gorm:"type:text;not null;index"`
	TableNumber   string `json:"table_number" gorm:"type:text;not null"`
	Capacity      int    `json:"capacity" gorm:"not null;default:2"`
	ReferenceCode string `json:"reference_code" gorm:"type:text;not null;index"`
	IsActive      bool   `json:"is_active" gorm:"not null;default:true"`
}

func (WaiterTable) TableName() string { return "waiter_tables" }

type KitchenCategory struct {
	ID          string `json:"id" gorm:"primaryKey;type:text"`
	CafeteriaID string `json:"cafeteria_id" gorm:"type:text;not null;index"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (KitchenCategory) TableName() string { return "kitchen_categories" }
