// Package memory keeps ledger entries and payouts in process memory.
// It backs tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/storage"
	"github.com/bramblecoop/bramble/types"
)

type Store struct {
	mu      sync.Mutex
	entries []*models.LedgerEntry
	payouts []*models.Payout
	now     func() time.Time

	// CreateErr, when set, is returned by Create before anything is stored.
	CreateErr func(payout *models.Payout) error
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}

// Append stores a copy of the entry. A zero CreatedAt is set to now.
func (s *Store) Append(_ context.Context, entry *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uint64(len(s.entries) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	copied := *entry
	s.entries = append(s.entries, &copied)

	return nil
}

func (s *Store) EntriesSince(_ context.Context, since time.Time, entityTypes []types.EntityType) ([]*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.LedgerEntry, 0)
	for _, e := range s.entries {
		if e.CreatedAt.Before(since) || !containsType(entityTypes, e.EntityType) {
			continue
		}

		copied := *e
		result = append(result, &copied)
	}

	return result, nil
}

func (s *Store) List(_ context.Context, filter storage.LedgerFilter) ([]*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*models.LedgerEntry, 0)
	for _, e := range s.entries {
		switch {
		case len(filter.EntityType) > 0 && e.EntityType != filter.EntityType:
			continue
		case len(filter.EntityID) > 0 && e.EntityID != filter.EntityID:
			continue
		case len(filter.TenantID) > 0 && e.TenantID.String != filter.TenantID:
			continue
		case !filter.TimeFrom.IsZero() && e.CreatedAt.Before(filter.TimeFrom):
			continue
		case !filter.TimeTo.IsZero() && !e.CreatedAt.Before(filter.TimeTo):
			continue
		}

		copied := *e
		matched = append(matched, &copied)
	}

	page := filter.Page.Normalize()
	sort.Slice(matched, func(i, j int) bool {
		if page.OrderBy == types.OrderByAsc {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].ID > matched[j].ID
	})

	return paginate(matched, page), nil
}

func (s *Store) Create(_ context.Context, payout *models.Payout) error {
	if s.CreateErr != nil {
		if err := s.CreateErr(payout); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	payout.ID = uint64(len(s.payouts) + 1)
	payout.CreatedAt = now
	payout.UpdatedAt = now

	copied := *payout
	s.payouts = append(s.payouts, &copied)

	return nil
}

func (s *Store) Find(_ context.Context, id uint64) (*models.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payouts {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}

	return nil, storage.ErrNotFound
}

func (s *Store) ListPayouts(_ context.Context, filter storage.PayoutFilter) ([]*models.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*models.Payout, 0)
	for _, p := range s.payouts {
		switch {
		case len(filter.EntityType) > 0 && p.EntityType != filter.EntityType:
			continue
		case len(filter.EntityID) > 0 && p.EntityID != filter.EntityID:
			continue
		case len(filter.TenantID) > 0 && p.TenantID.String != filter.TenantID:
			continue
		case len(filter.Status) > 0 && p.Status != filter.Status:
			continue
		}

		copied := *p
		matched = append(matched, &copied)
	}

	page := filter.Page.Normalize()
	sort.Slice(matched, func(i, j int) bool {
		if page.OrderBy == types.OrderByAsc {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].ID > matched[j].ID
	})

	return paginate(matched, page), nil
}

// Payouts returns every stored payout in creation order.
func (s *Store) Payouts() []*models.Payout {
	s.mu.Lock()
	defer s.mu.Unlock()

	payouts := make([]*models.Payout, len(s.payouts))
	for i, p := range s.payouts {
		copied := *p
		payouts[i] = &copied
	}

	return payouts
}

// Payouts exposes ListPayouts under the name the payout handlers expect.
type Payouts struct {
	*Store
}

func (p Payouts) List(ctx context.Context, filter storage.PayoutFilter) ([]*models.Payout, error) {
	return p.Store.ListPayouts(ctx, filter)
}

func containsType(entityTypes []types.EntityType, t types.EntityType) bool {
	for _, et := range entityTypes {
		if et == t {
			return true
		}
	}

	return false
}

func paginate[T any](rows []T, page storage.Page) []T {
	offset := page.Offset()
	if offset >= len(rows) {
		return rows[:0]
	}

	end := offset + page.Limit
	if end > len(rows) {
		end = len(rows)
	}

	return rows[offset:end]
}
