package payouts

import (
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/types"
)

// Group accumulates the ledger entries of one payee during a run.
type Group struct {
	models.EntityKey
	TenantID null.String
	Gross    decimal.Decimal
	Entries  int

	// TenantConflict is set when entries of the group disagree on the tenant.
	// The first tenant seen is kept.
	TenantConflict bool
}

func (g *Group) add(entry *models.LedgerEntry) {
	g.Gross = g.Gross.Add(entry.Amount)
	g.Entries++

	if !entry.TenantID.Valid {
		return
	}
	if !g.TenantID.Valid {
		g.TenantID = entry.TenantID
	} else if g.TenantID.String != entry.TenantID.String {
		g.TenantConflict = true
	}
}

// Decision is the outcome for one group. Payout is nil when the group was
// below the minimum payout and deferred.
type Decision struct {
	Group  *Group
	Payout *models.Payout
}

func (d *Decision) Skipped() bool {
	return d.Payout == nil
}

type Plan struct {
	Decisions []*Decision
}

// BuildPlan groups entries by payee in first-seen order, skips groups whose
// gross is strictly below the minimum payout and deducts the flat fee from
// the others. Net amounts are not clamped at zero.
func BuildPlan(entries []*models.LedgerEntry, now time.Time, policy Policy) *Plan {
	groups := linkedhashmap.New()

	for _, entry := range entries {
		key := entry.Key()

		var group *Group
		if v, found := groups.Get(key); found {
			group = v.(*Group)
		} else {
			group = &Group{EntityKey: key, Gross: decimal.Zero}
			groups.Put(key, group)
		}

		group.add(entry)
	}

	plan := &Plan{Decisions: make([]*Decision, 0, groups.Size())}
	scheduledFor := now.Add(policy.SettlementDelay)

	for _, v := range groups.Values() {
		group := v.(*Group)
		decision := &Decision{Group: group}

		if !group.Gross.LessThan(policy.MinPayout) {
			decision.Payout = &models.Payout{
				UUID:         uuid.New(),
				TenantID:     group.TenantID,
				EntityType:   group.EntityType,
				EntityID:     group.EntityID,
				Amount:       group.Gross.Sub(policy.ProcessingFee),
				Status:       types.PayoutPending,
				ScheduledFor: scheduledFor,
			}
		}

		plan.Decisions = append(plan.Decisions, decision)
	}

	return plan
}

func (p *Plan) Payouts() []*models.Payout {
	payouts := make([]*models.Payout, 0, len(p.Decisions))
	for _, d := range p.Decisions {
		if !d.Skipped() {
			payouts = append(payouts, d.Payout)
		}
	}

	return payouts
}

func (p *Plan) Skipped() []*Group {
	skipped := make([]*Group, 0)
	for _, d := range p.Decisions {
		if d.Skipped() {
			skipped = append(skipped, d.Group)
		}
	}

	return skipped
}
