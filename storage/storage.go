package storage

import (
	"errors"
	"time"

	"github.com/bramblecoop/bramble/types"
)

var ErrNotFound = errors.New("record not found")

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Page struct {
	Page    int
	Limit   int
	OrderBy types.OrderBy
}

// Normalize fills in the defaults used by every listing: page 1, 100 rows,
// newest first.
func (p Page) Normalize() Page {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.OrderBy != types.OrderByAsc {
		p.OrderBy = types.OrderByDesc
	}

	return p
}

func (p Page) Offset() int {
	return p.Page*p.Limit - p.Limit
}

type LedgerFilter struct {
	EntityType types.EntityType
	EntityID   string
	TenantID   string
	TimeFrom   time.Time
	TimeTo     time.Time
	Page
}

type PayoutFilter struct {
	EntityType types.EntityType
	EntityID   string
	TenantID   string
	Status     types.PayoutStatus
	Page
}
