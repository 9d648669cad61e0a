package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/types"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) EntriesSince(ctx context.Context, since time.Time, entityTypes []types.EntityType) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry

	result := r.db.WithContext(ctx).
		Where("created_at >= ? AND entity_type IN ?", since, entityTypes).
		Order("id asc").
		Find(&entries)

	return entries, result.Error
}

func (r *LedgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *LedgerRepository) List(ctx context.Context, filter LedgerFilter) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry

	page := filter.Page.Normalize()
	tx := r.db.WithContext(ctx).Order("id " + page.OrderBy)

	if len(filter.EntityType) > 0 {
		tx = tx.Where("entity_type = ?", filter.EntityType)
	}

	if len(filter.EntityID) > 0 {
		tx = tx.Where("entity_id = ?", filter.EntityID)
	}

	if len(filter.TenantID) > 0 {
		tx = tx.Where("tenant_id = ?", filter.TenantID)
	}

	if !filter.TimeFrom.IsZero() {
		tx = tx.Where("created_at >= ?", filter.TimeFrom)
	}

	if !filter.TimeTo.IsZero() {
		tx = tx.Where("created_at < ?", filter.TimeTo)
	}

	result := tx.Offset(page.Offset()).Limit(page.Limit).Find(&entries)

	return entries, result.Error
}
