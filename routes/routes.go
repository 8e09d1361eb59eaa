package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gamemart/collection"
	"gamemart/controllers/auth"
	"gamemart/controllers/catalog"
	"gamemart/controllers/dashboard"
	"gamemart/controllers/orders"
	"gamemart/controllers/reviews"
	"gamemart/controllers/topups"
	"gamemart/controllers/users"
	"gamemart/dispatch"
	"gamemart/middlewares"
	"gamemart/upstream"
)

// Deps is everything the HTTP surface needs wired in.
type Deps struct {
	API        *upstream.Client
	Cache      *collection.Cache
	Dispatch   *dispatch.Dispatcher
	DB         *gorm.DB
	Secret     []byte
	SessionTTL time.Duration
	Log        *logrus.Logger
}

func Setup(app *fiber.App, d Deps) {
	authHandler := &auth.Handler{API: d.API, DB: d.DB, Secret: d.Secret, SessionTTL: d.SessionTTL, Log: d.Log}
	userHandler := &users.Handler{API: d.API, Cache: d.Cache, Dispatch: d.Dispatch}
	catalogHandler := &catalog.Handler{API: d.API, Cache: d.Cache, Dispatch: d.Dispatch}
	orderHandler := &orders.Handler{API: d.API, Cache: d.Cache, Dispatch: d.Dispatch}
	topupHandler := &topups.Handler{API: d.API, Cache: d.Cache, Dispatch: d.Dispatch}
	reviewHandler := &reviews.Handler{API: d.API, Cache: d.Cache, Dispatch: d.Dispatch}
	dashHandler := &dashboard.Handler{API: d.API, DB: d.DB}

	app.Post("/api/login", authHandler.Login)
	app.Get("/api/admin-status", authHandler.AdminStatuses)

	api := app.Group("/api", middlewares.Session(d.DB, d.Secret))
	api.Post("/logout", authHandler.Logout)

	api.Get("/users", userHandler.List)
	api.Get("/wallet/users", userHandler.WalletUsers)
	api.Put("/users/:id/block", userHandler.Block)
	api.Put("/users/:id/online", userHandler.SetOnline)
	api.Post("/users/:id/wallet/preview", userHandler.WalletPreview)
	api.Post("/users/:id/wallet", userHandler.WalletCommit)

	api.Get("/products", catalogHandler.Products)
	api.Get("/products/:id", catalogHandler.Product)
	api.Post("/products", catalogHandler.CreateProduct)
	api.Put("/products/:id", catalogHandler.UpdateProduct)
	api.Delete("/products/:id", catalogHandler.DeleteProduct)

	api.Get("/services", catalogHandler.Services)
	api.Post("/services", catalogHandler.CreateService)
	api.Put("/services/:id", catalogHandler.UpdateService)
	api.Delete("/services/:id", catalogHandler.DeleteService)

	api.Get("/games", catalogHandler.Games)
	api.Post("/games", catalogHandler.CreateGame)
	api.Put("/games/:id", catalogHandler.UpdateGame)
	api.Delete("/games/:id", catalogHandler.DeleteGame)
	api.Post("/games/normalize-slug", catalogHandler.NormalizeSlug)

	api.Get("/orders", orderHandler.List)
	api.Post("/orders/:id/confirm", orderHandler.Confirm)
	api.Get("/orders/:id/meta", orderHandler.Meta)

	api.Get("/topup-orders", topupHandler.List)
	api.Put("/topup-orders/:id/confirm", topupHandler.Confirm)

	api.Get("/reviews", reviewHandler.List)
	api.Delete("/reviews/:id", reviewHandler.Delete)

	api.Get("/stats/monthly-sales", dashHandler.MonthlySales)
	api.Get("/stats/monthly-target", dashHandler.MonthlyTarget)
	api.Get("/stats/monthly", dashHandler.StatsMonthly)
	api.Get("/audit", dashHandler.Audit)
}
