package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Use(auth.AuthMiddleware)

	api.Get("/dashboard/stats", GetStatsAPI)
	api.Get("/ledger", GetLedgerAPI)
	api.Get("/calendar/:month", GetCalendarAPI)
	api.Get("/accounts", GetAccountsAPI)
}
