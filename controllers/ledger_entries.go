package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/bramblecoop/bramble/controllers/entities"
	"github.com/bramblecoop/bramble/controllers/helpers"
	"github.com/bramblecoop/bramble/controllers/queries"
	"github.com/bramblecoop/bramble/models"
	"github.com/bramblecoop/bramble/routes/middlewares"
	"github.com/bramblecoop/bramble/storage"
)

func LedgerEntryToEntity(entry *models.LedgerEntry) *entities.LedgerEntryEntity {
	return &entities.LedgerEntryEntity{
		ID:          entry.ID,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		TenantID:    entry.TenantID,
		Amount:      entry.Amount,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}

func (h *Handler) GetLedgerEntries(c *fiber.Ctx) error {
	var errs = new(helpers.Errors)

	params := new(queries.LedgerEntryFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(422).JSON(helpers.NewErrors(helpers.InvalidQuery))
	}

	helpers.Validate(params, "admin.ledger_entry", errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	filter := storage.LedgerFilter{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		TenantID:   params.TenantID,
		TimeFrom:   helpers.UnixTime(params.TimeFrom),
		TimeTo:     helpers.UnixTime(params.TimeTo),
		Page: storage.Page{
			Page:    params.Page,
			Limit:   params.Limit,
			OrderBy: params.OrderBy,
		}.Normalize(),
	}

	if auth := middlewares.CurrentUser(c); auth.TenantScoped() {
		filter.TenantID = auth.TenantID
	}

	entries, err := h.Ledger.List(c.UserContext(), filter)
	if err != nil {
		h.Logger.Errorf("Failed to list ledger entries: %v", err)

		return c.Status(500).JSON(helpers.NewErrors(helpers.ServerInternalError))
	}

	entryEntities := make([]*entities.LedgerEntryEntity, 0, len(entries))
	for _, entry := range entries {
		entryEntities = append(entryEntities, LedgerEntryToEntity(entry))
	}

	setPageHeaders(c, filter.Page)

	return c.Status(200).JSON(entryEntities)
}

func (h *Handler) CreateLedgerEntry(c *fiber.Ctx) error {
	var errs = new(helpers.Errors)

	params := new(queries.CreateLedgerEntryParams)
	if err := c.BodyParser(params); err != nil {
		return c.Status(422).JSON(helpers.NewErrors(helpers.InvalidBody))
	}

	params.EntityType = strings.ToUpper(params.EntityType)

	helpers.Validate(params, "admin.ledger_entry", errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	entry := &models.LedgerEntry{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		Amount:     decimal.RequireFromString(params.Amount),
	}
	if len(params.TenantID) > 0 {
		entry.TenantID = null.StringFrom(params.TenantID)
	}
	if len(params.Description) > 0 {
		entry.Description = null.StringFrom(params.Description)
	}

	if err := h.Ledger.Append(c.UserContext(), entry); err != nil {
		h.Logger.Errorf("Failed to append ledger entry for %s: %v", entry.Key(), err)

		return c.Status(500).JSON(helpers.NewErrors(helpers.ServerInternalError))
	}

	return c.Status(201).JSON(LedgerEntryToEntity(entry))
}
