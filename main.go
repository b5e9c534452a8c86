package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/config"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/database"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/auth"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/dashboard"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/inflows"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/outflows"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/routes/overdrafts"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/services"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/storage"
)

// customErrorHandler turns uncaught errors into JSON responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// The SPA client reads amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	var store ledger.Store
	if os.Getenv("DB_BACKEND") == "memory" {
		log.Println("Using in-memory store (DB_BACKEND=memory): data will not persist and auth endpoints need Postgres")
		store = storage.NewMemStore()
	} else {
		config.InitDB()
		if err := database.InitLedgerDB(config.GetDB()); err != nil {
			log.Fatal("Failed to initialize ledger schema:", err)
		}
		store = database.NewLedgerStore(config.GetDB())
	}
	config.SetEngine(ledger.NewEngine(store))

	notifier := services.NewNotifierFromEnv()

	app := fiber.New(fiber.Config{
		AppName:      "BYOSE Money Tracker",
		ErrorHandler: customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup inflows routes
	inflows.SetupInflowsRoutes(app)

	// Setup outflows routes
	outflows.SetupOutflowsRoutes(app, notifier)

	// Setup overdrafts routes
	overdrafts.SetupOverdraftsRoutes(app, notifier)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	services.StartScheduler(config.GetEngine(), notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
