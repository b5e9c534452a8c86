package inflows

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/auth"
)

func SetupInflowsRoutes(app *fiber.App) {
	api := app.Group("/api/inflows")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetInflowsAPI)
	api.Get("/:id", GetInflowAPI)
	api.Post("/", auth.AdminOnly, CreateInflowAPI)
	api.Put("/:id", auth.AdminOnly, UpdateInflowAPI)
	api.Delete("/:id", auth.AdminOnly, DeleteInflowAPI)
	api.Post("/:id/recalculate", auth.AdminOnly, RecalculateInflowAPI)
}
