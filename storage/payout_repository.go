package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bramblecoop/bramble/models"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) Create(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

func (r *PayoutRepository) Find(ctx context.Context, id uint64) (*models.Payout, error) {
	var payout models.Payout

	result := r.db.WithContext(ctx).First(&payout, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &payout, nil
}

func (r *PayoutRepository) List(ctx context.Context, filter PayoutFilter) ([]*models.Payout, error) {
	var payouts []*models.Payout

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

	if len(filter.Status) > 0 {
		tx = tx.Where("status = ?", filter.Status)
	}

	result := tx.Offset(page.Offset()).Limit(page.Limit).Find(&payouts)

	return payouts, result.Error
}
