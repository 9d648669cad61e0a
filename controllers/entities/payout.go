package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/types"
)

type PayoutEntity struct {
	ID           uint64             `json:"id"`
	UUID         uuid.UUID          `json:"uuid"`
	TenantID     null.String        `json:"tenant_id"`
	EntityType   types.EntityType   `json:"entity_type"`
	EntityID     string             `json:"entity_id"`
	Amount       decimal.Decimal    `json:"amount"`
	Status       types.PayoutStatus `json:"status"`
	ScheduledFor time.Time          `json:"scheduled_for"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
