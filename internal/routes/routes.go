package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/merchstore/internal/checkout"
	"github.com/example/merchstore/internal/config"
	"github.com/example/merchstore/internal/handlers"
	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/middleware"
	"github.com/example/merchstore/internal/orders"
	"github.com/example/merchstore/internal/services"
	"github.com/example/merchstore/internal/storage"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Config  *config.Config
	Backend storage.Backend
	Logger  logger.Logger

	// DB backs accounts and rewards. Those routes are not mounted without it.
	DB *gorm.DB

	// Webhook serves the admin spreadsheet tools. It may be unconfigured.
	Webhook *services.SheetsWebhook
	Sinks   []checkout.Sink

	Now func() time.Time
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Dependencies) {
	cfg := deps.Config
	log := deps.Logger
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	shop := deps.Backend.Namespace(storage.ShopNamespace)
	orderLog := orders.NewLog(shop, log.With(logger.String("component", "order_log")))
	sequencer := orders.NewDailySequencer(shop, log.With(logger.String("component", "sequencer")))
	checkoutService := checkout.NewService(sequencer, orderLog, deps.Sinks, log,
		checkout.WithClock(now),
		checkout.WithLocation(cfg.Location),
		checkout.WithRemoteTimeout(cfg.RemoteTimeout),
	)

	sessions := handlers.NewSessions(deps.Backend, log)
	catalogHandler := handlers.NewCatalogHandler()
	cartHandler := handlers.NewCartHandler(sessions)
	checkoutHandler := handlers.NewCheckoutHandler(sessions, checkoutService)
	orderHandler := handlers.NewOrderHandler(sessions, orderLog)
	preferencesHandler := handlers.NewPreferencesHandler(sessions, log)
	adminHandler := handlers.NewAdminHandler(orderLog, deps.Webhook, now, log)

	api := app.Group("/api")

	// Catalog routes
	products := api.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)

	// Auth routes
	authHandler := handlers.NewAuthHandler(deps.DB, cfg)
	auth := api.Group("/auth")
	auth.Post("/guest", authHandler.Guest)
	if deps.DB != nil {
		auth.Post("/register", authHandler.Register)
		auth.Post("/login", authHandler.Login)
	}

	// Session routes
	session := api.Group("", middleware.SessionMiddleware(cfg))

	session.Get("/cart", cartHandler.GetCart)
	session.Delete("/cart", cartHandler.ClearCart)
	session.Post("/cart/items", cartHandler.AddItem)
	session.Put("/cart/items/:productId/:size", cartHandler.UpdateItem)
	session.Delete("/cart/items/:productId/:size", cartHandler.RemoveItem)

	session.Post("/checkout", checkoutHandler.Checkout)
	session.Get("/orders/last", orderHandler.LastOrder)
	session.Get("/orders/last/csv", orderHandler.LastOrderCSV)

	session.Get("/preferences/language", preferencesHandler.GetLanguage)
	session.Put("/preferences/language", preferencesHandler.SetLanguage)

	// Admin routes
	admin := api.Group("/admin", middleware.SessionMiddleware(cfg), middleware.AdminMiddleware(cfg))
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Delete("/orders", adminHandler.ClearOrders)
	admin.Get("/orders/today", adminHandler.TodayOrders)
	admin.Get("/orders/export", adminHandler.ExportOrders)
	admin.Post("/sheets/test", adminHandler.TestSheets)
	admin.Get("/sheets/orders", adminHandler.SheetOrders)

	if deps.DB == nil {
		log.Warn("no database configured, account and reward routes are disabled")
		return
	}

	profileHandler := handlers.NewProfileHandler(deps.DB, cfg)
	rewardsHandler := handlers.NewRewardsHandler(deps.DB, log)

	// Account routes
	account := api.Group("", middleware.SessionMiddleware(cfg), middleware.UserMiddleware())
	account.Get("/profile", profileHandler.GetProfile)
	account.Put("/profile", profileHandler.UpdateProfile)
	account.Get("/rewards/tasks", rewardsHandler.ListTasks)
	account.Get("/rewards/me", rewardsHandler.MyRewards)
	account.Post("/rewards/tasks/:id/complete", rewardsHandler.CompleteTask)

	admin.Post("/rewards/tasks", rewardsHandler.CreateTask)
}
