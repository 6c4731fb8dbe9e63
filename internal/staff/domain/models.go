package domain

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleWaiter  Role = "waiter"
	RoleKitchen Role = "kitchen"
)

// Staff is a named actor inside one cafeteria. Disabled staff are blocked
// from every mutating operation.
type Staff struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	CafeteriaID string    `json:"cafeteria_id" gorm:"type:text;not null;index"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Role        Role      `json:"role" gorm:"type:text;not null"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`

	// Kitchen staff only: the category scoping which orders they may act on.
	KitchenCategoryID *string `json:"kitchen_category_id,omitempty" gorm:"type:text"`
}

func (Staff) TableName() string { return "staff" }

// WaiterSession binds a waiter to one section for the shift.
type WaiterSession struct {
	WaiterID    string `json:"waiter_id" gorm:"primaryKey;type:text"`
	SectionID   string `json:"section_id" gorm:"type:text;not null"`
	CafeteriaID string `json:"cafeteria_id" gorm:"type:text;not null"`
}

func (WaiterSession) TableName() string { return "waiter_sessions" }

var ErrNotFound = errors.New("staff_not_found")

type Repository interface {
	FindAll(ctx context.Context) ([]Staff, error)
	FindByCafeteria(ctx context.Context, cafeteriaID string) ([]Staff, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	Create(ctx context.Context, staff *Staff) error
	UpdateStatus(ctx context.Context, id string, isActive bool) (*Staff, error)

	SetWaiterSession(ctx context.Context, session WaiterSession) error
	WaiterSession(ctx context.Context, waiterID string) (*WaiterSession, error)
	ClearWaiterSession(ctx context.Context, waiterID string) error
}
