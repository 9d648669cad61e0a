package payouts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/types"
)

func ledgerEntry(entityType types.EntityType, id string, tenant null.String, amount string) *models.LedgerEntry {
	return &models.LedgerEntry{
		EntityType: entityType,
		EntityID:   id,
		TenantID:   tenant,
		Amount:     decimal.RequireFromString(amount),
	}
}

func TestBuildPlan(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)

	entries := []*models.LedgerEntry{
		ledgerEntry(types.EntityCoop, "B", null.StringFrom("tenantY"), "8"),
		ledgerEntry(types.EntityInstructor, "A", null.StringFrom("tenantX"), "50"),
		ledgerEntry(types.EntityInstructor, "A", null.StringFrom("tenantX"), "-5"),
		// Same id, different entity type: a separate payee.
		ledgerEntry(types.EntityCoop, "A", null.String{}, "10"),
	}

	plan := BuildPlan(entries, now, DefaultPolicy())
	require.Len(t, plan.Decisions, 3)

	assert.Equal(t, models.EntityKey{EntityType: types.EntityCoop, EntityID: "B"}, plan.Decisions[0].Group.EntityKey)
	assert.True(t, plan.Decisions[0].Skipped())
	assert.True(t, plan.Decisions[0].Group.Gross.Equal(decimal.NewFromInt(8)))

	a := plan.Decisions[1]
	assert.False(t, a.Skipped())
	assert.Equal(t, 2, a.Group.Entries)
	assert.True(t, a.Payout.Amount.Equal(decimal.NewFromInt(43)))
	assert.Equal(t, "tenantX", a.Payout.TenantID.String)
	assert.Equal(t, types.PayoutPending, a.Payout.Status)
	assert.Equal(t, now.Add(72*time.Hour), a.Payout.ScheduledFor)

	coopA := plan.Decisions[2]
	assert.True(t, coopA.Payout.Amount.Equal(decimal.NewFromInt(8)))
	assert.False(t, coopA.Payout.TenantID.Valid)

	assert.Len(t, plan.Payouts(), 2)
	assert.Len(t, plan.Skipped(), 1)
}

func TestBuildPlanTenant(t *testing.T) {
	entries := []*models.LedgerEntry{
		ledgerEntry(types.EntityCoop, "c", null.String{}, "5"),
		ledgerEntry(types.EntityCoop, "c", null.StringFrom("t1"), "5"),
		ledgerEntry(types.EntityCoop, "c", null.StringFrom("t2"), "5"),
	}

	plan := BuildPlan(entries, time.Now(), DefaultPolicy())
	require.Len(t, plan.Decisions, 1)

	group := plan.Decisions[0].Group
	assert.Equal(t, "t1", group.TenantID.String)
	assert.True(t, group.TenantConflict)
	assert.Equal(t, "t1", plan.Decisions[0].Payout.TenantID.String)
}

func TestBuildPlanEmpty(t *testing.T) {
	plan := BuildPlan(nil, time.Now(), DefaultPolicy())

	assert.Empty(t, plan.Decisions)
	assert.Empty(t, plan.Payouts())
	assert.Empty(t, plan.Skipped())
}
