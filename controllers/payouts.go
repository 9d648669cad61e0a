package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bramblecoop/bramble/controllers/entities"
	"github.com/bramblecoop/bramble/controllers/helpers"
	"github.com/bramblecoop/bramble/controllers/queries"
	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/routes/middlewares"
	"github.com/bramblecoop/bramble/storage"
)

func PayoutToEntity(payout *models.Payout) *entities.PayoutEntity {
	return &entities.PayoutEntity{
		ID:           payout.ID,
		UUID:         payout.UUID,
		TenantID:     payout.TenantID,
		EntityType:   payout.EntityType,
		EntityID:     payout.EntityID,
		Amount:       payout.Amount,
		Status:       payout.Status,
		ScheduledFor: payout.ScheduledFor,
		CreatedAt:    payout.CreatedAt,
		UpdatedAt:    payout.UpdatedAt,
	}
}

func (h *Handler) GetPayouts(c *fiber.Ctx) error {
	var errs = new(helpers.Errors)

	params := new(queries.PayoutFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(422).JSON(helpers.NewErrors(helpers.InvalidQuery))
	}

	helpers.Validate(params, "admin.payout", errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	filter := storage.PayoutFilter{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		TenantID:   params.TenantID,
		Status:     params.Status,
		Page: storage.Page{
			Page:    params.Page,
			Limit:   params.Limit,
			OrderBy: params.OrderBy,
		}.Normalize(),
	}

	if auth := middlewares.CurrentUser(c); auth.TenantScoped() {
		filter.TenantID = auth.TenantID
	}

	payoutList, err := h.Payouts.List(c.UserContext(), filter)
	if err != nil {
		h.Logger.Errorf("Failed to list payouts: %v", err)

		return c.Status(500).JSON(helpers.NewErrors(helpers.ServerInternalError))
	}

	payoutEntities := make([]*entities.PayoutEntity, 0, len(payoutList))
	for _, payout := range payoutList {
		payoutEntities = append(payoutEntities, PayoutToEntity(payout))
	}

	setPageHeaders(c, filter.Page)

	return c.Status(200).JSON(payoutEntities)
}

func (h *Handler) GetPayout(c *fiber.Ctx) error {
	id, ok := helpers.ParseID(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(helpers.NewErrors(helpers.RecordNotFound))
	}

	payout, err := h.Payouts.Find(c.UserContext(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(404).JSON(helpers.NewErrors(helpers.RecordNotFound))
	} else if err != nil {
		h.Logger.Errorf("Failed to find payout %d: %v", id, err)

		return c.Status(500).JSON(helpers.NewErrors(helpers.ServerInternalError))
	}

	if auth := middlewares.CurrentUser(c); auth.TenantScoped() && payout.TenantID.String != auth.TenantID {
		return c.Status(404).JSON(helpers.NewErrors(helpers.RecordNotFound))
	}

	return c.Status(200).JSON(PayoutToEntity(payout))
}

func (h *Handler) GetLastRun(c *fiber.Ctx) error {
	if h.Summaries == nil {
		return c.Status(404).JSON(helpers.NewErrors(helpers.RecordNotFound))
	}

	summary, err := h.Summaries.LastRunSummary(c.UserContext())
	if err != nil {
		h.Logger.Warnf("Failed to read last payout run: %v", err)

		return c.Status(404).JSON(helpers.NewErrors(helpers.RecordNotFound))
	}

	return c.Status(200).JSON(summary)
}
