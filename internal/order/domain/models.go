package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusServed    Status = "served"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"

	// Legacy status values still present on old rows.
	StatusCreated       Status = "created"
	StatusSentToKitchen Status = "sent_to_kitchen"
)

// OrderItem is a price/name snapshot of a menu item at order time.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Notes      string  `json:"notes,omitempty"`
}

// Order is a purchase session at one table. Items are frozen at creation;
// only Status changes afterwards.
type Order struct {
	ID            string                         `json:"id" gorm:"primaryKey;type:text"`
	SessionID     string                         `json:"session_id" gorm:"type:text;not null;index"`
	CafeteriaID   string                         `json:"cafeteria_id" gorm:"type:text;not null;index"`
	Items         datatypes.JSONSlice[OrderItem] `json:"items" gorm:"not null"`
	Status        Status                         `json:"status" gorm:"type:text;not null;index"`
	Total         float64                        `json:"total" gorm:"not null"`
	CafeteriaCode string                         `json:"cafeteria_code" gorm:"type:text"`
	TableCode     string                         `json:"table_code" gorm:"type:text"`
	TableDisplay  string                         `json:"table_number_display" gorm:"type:text"`
	CreatedAt     time.Time                      `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time                      `json:"updated_at" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }
