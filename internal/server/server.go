// Package server assembles the HTTP application from its services.
package server

import (
	"laptopstore/internal/config"
	"laptopstore/internal/handlers"
	"laptopstore/internal/middleware"
	"laptopstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services are the collaborators the HTTP layer exposes.
type Services struct {
	Auth       *services.AuthService
	Categories *services.CategoryService
	Items      *services.ItemService
	Carts      *services.CartService
	Orders     *services.OrderService
}

// NewApp builds the Fiber app with middleware and every route mounted.
func NewApp(cfg *config.Config, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authRequired := middleware.AuthRequired(svc.Auth)

	handlers.NewHealthHandler(cfg.AppName).RegisterRoutes(app)
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(app, authRequired)
	handlers.NewCategoryHandler(svc.Categories).RegisterRoutes(app, authRequired)
	handlers.NewItemHandler(svc.Items).RegisterRoutes(app, authRequired)
	handlers.NewCartHandler(svc.Carts).RegisterRoutes(app, authRequired)
	handlers.NewOrderHandler(svc.Orders).RegisterRoutes(app, authRequired)

	return app
}
