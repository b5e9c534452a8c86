package outflows

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/auth"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/services"
)

var notifier *services.Notifier

func SetupOutflowsRoutes(app *fiber.App, n *services.Notifier) {
	notifier = n

	api := app.Group("/api/outflows")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetOutflowsAPI)
	api.Get("/:id", GetOutflowAPI)
	api.Post("/", auth.AdminOnly, CreateOutflowAPI)
	api.Put("/:id", auth.AdminOnly, UpdateOutflowAPI)
	api.Delete("/:id", auth.AdminOnly, DeleteOutflowAPI)
}
