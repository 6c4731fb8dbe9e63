package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("order_not_found")
)

// Repository is the storage port for orders. FindByID returns (nil, nil) on
// a miss; callers translate to ErrNotFound.
type Repository interface {
	FindAll(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByCafeteria(ctx context.Context, cafeteriaID string) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}
