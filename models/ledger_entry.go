package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/types"
)

// LedgerEntry is a single financial event. Rows are append-only.
type LedgerEntry struct {
	ID          uint64           `json:"id" gorm:"primaryKey"`
	EntityType  types.EntityType `json:"entity_type"`
	EntityID    string           `json:"entity_id"`
	TenantID    null.String      `json:"tenant_id"`
	Amount      decimal.Decimal  `json:"amount" gorm:"type:numeric(20,2)"`
	Description null.String      `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (e *LedgerEntry) Key() EntityKey {
	return EntityKey{EntityType: e.EntityType, EntityID: e.EntityID}
}

// EntityKey identifies the payee of a ledger entry or payout.
type EntityKey struct {
	EntityType types.EntityType
	EntityID   string
}

func (k EntityKey) String() string {
	return k.EntityType + ":" + k.EntityID
}
