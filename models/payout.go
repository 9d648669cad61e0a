package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/types"
)

// Payout is created PENDING by the weekly aggregation. Later transitions
// (PAID, FAILED) belong to the payout executor.
type Payout struct {
	ID           uint64             `json:"id" gorm:"primaryKey"`
	UUID         uuid.UUID          `json:"uuid"`
	TenantID     null.String        `json:"tenant_id"`
	EntityType   types.EntityType   `json:"entity_type"`
	EntityID     string             `json:"entity_id"`
	Amount       decimal.Decimal    `json:"amount" gorm:"type:numeric(20,2)"`
	Status       types.PayoutStatus `json:"status"`
	ScheduledFor time.Time          `json:"scheduled_for"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (p *Payout) Key() EntityKey {
	return EntityKey{EntityType: p.EntityType, EntityID: p.EntityID}
}

func (p *Payout) IsPending() bool {
	return p.Status == types.PayoutPending
}
