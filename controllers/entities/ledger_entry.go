package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/types"
)

type LedgerEntryEntity struct {
	ID          uint64           `json:"id"`
	EntityType  types.EntityType `json:"entity_type"`
	EntityID    string           `json:"entity_id"`
	TenantID    null.String      `json:"tenant_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Description null.String      `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}
