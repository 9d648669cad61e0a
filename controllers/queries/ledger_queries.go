package queries

import (
	"github.com/shopspring/decimal"

	"github.com/bramblecoop/bramble/types"
)

type LedgerEntryFilters struct {
	EntityType types.EntityType `query:"entity_type" json:"entity_type" validate:"in:INSTRUCTOR,COOP,FAMILY,PLATFORM"`
	EntityID   string           `query:"entity_id" json:"entity_id"`
	TenantID   string           `query:"tenant_id" json:"tenant_id"`
	Limit      int              `query:"limit" json:"limit" validate:"uint|max:1000"`
	Page       int              `query:"page" json:"page" validate:"uint"`
	TimeFrom   int64            `query:"time_from" json:"time_from" validate:"uint"`
	TimeTo     int64            `query:"time_to" json:"time_to" validate:"uint"`
	OrderBy    types.OrderBy    `query:"order_by" json:"order_by" validate:"in:asc,desc"`
}

type CreateLedgerEntryParams struct {
	EntityType  types.EntityType `json:"entity_type" validate:"required|in:INSTRUCTOR,COOP,FAMILY,PLATFORM"`
	EntityID    string           `json:"entity_id" validate:"required|maxLen:64"`
	TenantID    string           `json:"tenant_id" validate:"maxLen:64"`
	Amount      string           `json:"amount" validate:"required|ValidateAmount"`
	Description string           `json:"description" validate:"maxLen:255"`
}

func (p CreateLedgerEntryParams) ValidateAmount(val string) bool {
	amount, err := decimal.NewFromString(val)
	if err != nil {
		return false
	}

	return !amount.IsZero() && amount.Equal(amount.Round(2))
}
