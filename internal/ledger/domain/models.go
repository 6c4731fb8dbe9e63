package domain

import "time"

// EntryType classifies a ledger movement. Amount is always a positive
// magnitude; direction is implied by the type.
type EntryType string

const (
	EntryTypeOrderDebit       EntryType = "order_debit"
	EntryTypeCommissionCredit EntryType = "commission_credit"
	EntryTypeRechargeCredit   EntryType = "recharge_credit"
	EntryTypePayoutDebit      EntryType = "payout_debit"
	EntryTypeManualAdjustment EntryType = "manual_adjustment"
	EntryTypeOrderPayment     EntryType = "order_payment"
)

// Entry is an immutable, append-only financial record. The ledger is the
// system of record; cached balances are derived from it.
type Entry struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Type        EntryType `json:"type" gorm:"type:text;not null;index"`
	Amount      int64     `json:"amount" gorm:"not null"`
	OrderID     *string   `json:"order_id,omitempty" gorm:"type:text;index"`
	CafeteriaID *string   `json:"cafeteria_id,omitempty" gorm:"type:text;index"`
	MarketerID  *string   `json:"marketer_id,omitempty" gorm:"type:text;index"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
}

func (Entry) TableName() string { return "ledger_entries" }

type RechargeStatus string

const (
	RechargeStatusPending  RechargeStatus = "pending"
	RechargeStatusApproved RechargeStatus = "approved"
	RechargeStatusRejected RechargeStatus = "rejected"
)

// RechargeRequest asks for a points top-up backed by a payment proof. It
// transitions exactly once out of pending.
type RechargeRequest struct {
	ID            string         `json:"id" gorm:"primaryKey;type:text"`
	CafeteriaID   string         `json:"cafeteria_id" gorm:"type:text;not null;index"`
	Amount        int64          `json:"amount" gorm:"not null"`
	ProofImageURL string         `json:"proof_image_url" gorm:"type:text"`
	Status        RechargeStatus `json:"status" gorm:"type:text;not null;index"`
	CreatedAt     time.Time      `json:"created_at" gorm:"not null"`
	ProcessedAt   *time.Time     `json:"processed_at,omitempty"`
	Notes         string         `json:"notes" gorm:"type:text"`
}

func (RechargeRequest) TableName() string { return "recharge_requests" }

// PayoutRecord is an immutable record of points paid out to a marketer.
type PayoutRecord struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	MarketerID string    `json:"marketer_id" gorm:"type:text;not null;index"`
	Amount     int64     `json:"amount" gorm:"not null"`
	Note       string    `json:"note" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
	CreatedBy  string    `json:"created_by" gorm:"type:text"`
}

func (PayoutRecord) TableName() string { return "payout_records" }
