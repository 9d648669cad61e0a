package routes

import (
	"crypto/rsa"

	"github.com/gofiber/fiber/v2"

	"github.com/bramblecoop/bramble/controllers"
	"github.com/bramblecoop/bramble/routes/middlewares"
)

func SetupRouter(handler *controllers.Handler, publicKey *rsa.PublicKey) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)

	admin := app.Group("/api/v2/admin", middlewares.Authenticate(publicKey), middlewares.AdminValidator)
	admin.Get("/ledger_entries", handler.GetLedgerEntries)
	admin.Post("/ledger_entries", middlewares.OperatorValidator, handler.CreateLedgerEntry)

	admin.Get("/payouts", handler.GetPayouts)
	admin.Get("/payouts/last_run", handler.GetLastRun)
	admin.Get("/payouts/:id", handler.GetPayout)

	return app
}
