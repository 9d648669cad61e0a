package controllers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/payouts"
	"github.com/bramblecoop/bramble/storage"
)

type LedgerStore interface {
	Append(ctx context.Context, entry *models.LedgerEntry) error
	List(ctx context.Context, filter storage.LedgerFilter) ([]*models.LedgerEntry, error)
}

type PayoutStore interface {
	Find(ctx context.Context, id uint64) (*models.Payout, error)
	List(ctx context.Context, filter storage.PayoutFilter) ([]*models.Payout, error)
}

type RunSummaryReader interface {
	LastRunSummary(ctx context.Context) (*payouts.RunSummary, error)
}

// Handler serves the admin API. Summaries may be nil when no cache is
// configured.
type Handler struct {
	Ledger    LedgerStore
	Payouts   PayoutStore
	Summaries RunSummaryReader
	Logger    logrus.FieldLogger
}

func NewHandler(ledger LedgerStore, payoutStore PayoutStore, summaries RunSummaryReader, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{
		Ledger:    ledger,
		Payouts:   payoutStore,
		Summaries: summaries,
		Logger:    logger,
	}
}

func setPageHeaders(c *fiber.Ctx, page storage.Page) {
	c.Set("page", strconv.Itoa(page.Page))
	c.Set("per-page", strconv.Itoa(page.Limit))
}
