package domain

import (
	"context"
	"time"
)

// MaxRetained bounds the audit trail. Older events are discarded first.
const MaxRetained = 1000

// Event records a blocked or otherwise suspicious action attempt.
type Event struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text"`
	ActorID         string    `json:"actor_id" gorm:"type:text;not null;index"`
	Role            string    `json:"role" gorm:"type:text;not null"`
	AttemptedAction string    `json:"attempted_action" gorm:"type:text;not null"`
	TargetID        string    `json:"target_id" gorm:"type:text"`
	Timestamp       time.Time `json:"timestamp" gorm:"not null;index"`
	Blocked         bool      `json:"blocked" gorm:"not null"`
	Reason          string    `json:"reason" gorm:"type:text"`
}

func (Event) TableName() string { return "security_events" }

type Repository interface {
	Log(ctx context.Context, event *Event) error
	FindAll(ctx context.Context) ([]Event, error)
	FindByActor(ctx context.Context, actorID string) ([]Event, error)
}
