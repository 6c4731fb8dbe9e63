package domain

import (
	"context"
	"errors"

	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
)

var (
	ErrCafeteriaNotFound           = errors.New("cafeteria_not_found")
	ErrNoPointsBalance             = errors.New("cafeteria_points_exhausted")
	ErrTrialExpired                = errors.New("cafeteria_trial_expired")
	ErrMissingTableCode            = errors.New("missing_table_code")
	ErrCafeteriaCodeMismatch       = errors.New("invalid_cafeteria_code")
	ErrTableNotFound               = errors.New("table_not_found")
	ErrTableInactive               = errors.New("table_inactive")
	ErrInvalidTransition           = errors.New("invalid_status_transition")
	ErrForbidden                   = errors.New("action_forbidden")
	ErrInsufficientPoints          = errors.New("insufficient_points")
	ErrInsufficientMarketerBalance = errors.New("insufficient_marketer_balance")
	ErrRechargeAlreadyProcessed    = errors.New("recharge_already_processed")
	ErrInvalidRechargeStatus       = errors.New("invalid_recharge_status")
	ErrSettlementBusy              = errors.New("settlement_in_progress")
	ErrResetUnavailable            = errors.New("reset_unavailable")
)

// TableBinding is the decoded QR payload tying an order to a physical
// table. CafeteriaCode must match the tenant's stored code.
type TableBinding struct {
	CafeteriaCode string `json:"cafeteria_code"`
	TableCode     string `json:"table_code"`
	TableDisplay  string `json:"table_number_display"`
}

type CreateOrderRequest struct {
	SessionID   string                 `json:"session_id"`
	CafeteriaID string                 `json:"cafeteria_id"`
	Items       []orderdomain.OrderItem `json:"items"`
	Table       TableBinding           `json:"table"`
}

type UpdateStatusRequest struct {
	OrderID   string             `json:"order_id"`
	NewStatus orderdomain.Status `json:"new_status"`

	// Optional authenticated actor context. When set, guard checks run and
	// blocked attempts are recorded as security events.
	ActorID   string           `json:"actor_id,omitempty"`
	ActorRole staffdomain.Role `json:"actor_role,omitempty"`
}

type CreateRechargeInput struct {
	CafeteriaID   string `json:"cafeteria_id"`
	Amount        int64  `json:"amount"`
	ProofImageURL string `json:"proof_image_url"`
}

type ProcessRechargeInput struct {
	RequestID string                      `json:"request_id"`
	Status    ledgerdomain.RechargeStatus `json:"status"`
	Notes     string                      `json:"notes,omitempty"`
}

type CreatePayoutInput struct {
	MarketerID string `json:"marketer_id"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
}

// Service is the order/ledger orchestrator: the only component allowed to
// compose transition rules, guards, the financial engine, and the
// repositories into multi-step operations.
type Service interface {
	Orders(ctx context.Context) ([]orderdomain.Order, error)
	Order(ctx context.Context, id string) (*orderdomain.Order, error)
	OrdersByCafeteria(ctx context.Context, cafeteriaID string) ([]orderdomain.Order, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*orderdomain.Order, error)

	// UpdateOrderStatus returns (nil, nil) when the order does not exist.
	UpdateOrderStatus(ctx context.Context, req UpdateStatusRequest) (*orderdomain.Order, error)

	CreateRechargeRequest(ctx context.Context, in CreateRechargeInput) (*ledgerdomain.RechargeRequest, error)
	ProcessRechargeRequest(ctx context.Context, in ProcessRechargeInput) (*ledgerdomain.RechargeRequest, error)

	CreatePayout(ctx context.Context, in CreatePayoutInput) (*ledgerdomain.PayoutRecord, error)
	MarketerBalance(ctx context.Context, marketerID string) (int64, error)
	MarketerCommissions(ctx context.Context, marketerID string) ([]ledgerdomain.Entry, error)
	MarketerPayouts(ctx context.Context, marketerID string) ([]ledgerdomain.PayoutRecord, error)

	CommissionConfig(ctx context.Context) (settingsdomain.CommissionConfig, error)
	UpdateCommissionConfig(ctx context.Context, cfg settingsdomain.CommissionConfig) error
	TrialConfig(ctx context.Context) (settingsdomain.TrialConfig, error)
	UpdateTrialConfig(ctx context.Context, cfg settingsdomain.TrialConfig) error
	SetTrialOverride(ctx context.Context, cafeteriaID string, trialDays *int) (*cafedomain.Cafeteria, error)
	SetTrialExpired(ctx context.Context, cafeteriaID string, expired bool) (*cafedomain.Cafeteria, error)

	// Reset wipes all stores and reseeds the demo dataset. Only the
	// in-memory store supports it.
	Reset(ctx context.Context) error

	// Subscribe registers a callback invoked after every successful
	// mutation. The returned function unsubscribes.
	Subscribe(callback func()) func()
}
