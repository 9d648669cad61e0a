package queries

import "github.com/bramblecoop/bramble/types"

type PayoutFilters struct {
	EntityType types.EntityType   `query:"entity_type" json:"entity_type" validate:"in:INSTRUCTOR,COOP,FAMILY,PLATFORM"`
	EntityID   string             `query:"entity_id" json:"entity_id"`
	TenantID   string             `query:"tenant_id" json:"tenant_id"`
	Status     types.PayoutStatus `query:"status" json:"status" validate:"in:PENDING,PAID,FAILED"`
	Limit      int                `query:"limit" json:"limit" validate:"uint|max:1000"`
	Page       int                `query:"page" json:"page" validate:"uint"`
	OrderBy    types.OrderBy      `query:"order_by" json:"order_by" validate:"in:asc,desc"`
}
