package overdrafts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/auth"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/services"
)

var notifier *services.Notifier

func SetupOverdraftsRoutes(app *fiber.App, n *services.Notifier) {
	notifier = n

	api := app.Group("/api/overdrafts")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetOverdraftsAPI)
	api.Get("/:id", GetOverdraftAPI)
	api.Post("/", auth.AdminOnly, CreateOverdraftAPI)
	api.Put("/:id", auth.AdminOnly, UpdateOverdraftAPI)
	api.Post("/:id/settle", auth.AdminOnly, SettleOverdraftAPI)
	api.Delete("/:id", auth.AdminOnly, DeleteOverdraftAPI)
}
