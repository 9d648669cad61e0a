package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/storage"
	"github.com/bramblecoop/bramble/types"
)

func TestEntriesSinceFiltersWindowAndTypes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	s := NewStore()

	appendEntry := func(entityType types.EntityType, id string, age time.Duration) {
		require.NoError(t, s.Append(ctx, &models.LedgerEntry{
			EntityType: entityType,
			EntityID:   id,
			Amount:     decimal.NewFromInt(1),
			CreatedAt:  now.Add(-age),
		}))
	}

	appendEntry(types.EntityInstructor, "fresh", time.Hour)
	appendEntry(types.EntityCoop, "edge", 7*24*time.Hour)
	appendEntry(types.EntityInstructor, "stale", 10*24*time.Hour)
	appendEntry(types.EntityFamily, "family", time.Hour)

	entries, err := s.EntriesSince(ctx, now.Add(-7*24*time.Hour), []types.EntityType{types.EntityInstructor, types.EntityCoop})
	require.NoError(t, err)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EntityID)
	}
	assert.Equal(t, []string{"fresh", "edge"}, ids)
}

func TestListLedgerEntries(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i, tenant := range []string{"t1", "t2", "t1", "t1"} {
		require.NoError(t, s.Append(ctx, &models.LedgerEntry{
			EntityType: types.EntityCoop,
			EntityID:   "coop-1",
			TenantID:   null.StringFrom(tenant),
			Amount:     decimal.NewFromInt(int64(i)),
		}))
	}

	entries, err := s.List(ctx, storage.LedgerFilter{TenantID: "t1", Page: storage.Page{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(4), entries[0].ID)
	assert.Equal(t, uint64(3), entries[1].ID)

	entries, err = s.List(ctx, storage.LedgerFilter{TenantID: "t1", Page: storage.Page{Limit: 2, Page: 2}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(1), entries[0].ID)

	entries, err = s.List(ctx, storage.LedgerFilter{Page: storage.Page{Page: 5}})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPayouts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Create(ctx, &models.Payout{EntityType: types.EntityCoop, EntityID: "a", Status: types.PayoutPending}))
	require.NoError(t, s.Create(ctx, &models.Payout{EntityType: types.EntityInstructor, EntityID: "b", Status: types.PayoutPending}))

	payout, err := s.Find(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", payout.EntityID)

	_, err = s.Find(ctx, 3)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	payouts, err := Payouts{s}.List(ctx, storage.PayoutFilter{EntityType: types.EntityCoop})
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, "a", payouts[0].EntityID)

	s.CreateErr = func(*models.Payout) error { return errors.New("boom") }
	assert.Error(t, s.Create(ctx, &models.Payout{EntityID: "c"}))
	assert.Len(t, s.Payouts(), 2)
}
