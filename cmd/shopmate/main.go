package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"shopmate/internal/config"
	"shopmate/internal/http/handlers"
	applog "shopmate/internal/log"
	"shopmate/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with a speakable message; never leak internals.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"speech": "Sorry, something went wrong. Please try again.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, cfg)
	defer deps.Progress.StopAll()

	// Tool-call surface for the voice runtime
	tools := app.Group("/tools")
	tools.Post("/search_catalog", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.ToolHandler.SearchCatalog)
	tools.Post("/add_to_cart", deps.ToolHandler.AddToCart)
	tools.Post("/remove_from_cart", deps.ToolHandler.RemoveFromCart)
	tools.Post("/set_quantity", deps.ToolHandler.SetQuantity)
	tools.Post("/show_cart", deps.ToolHandler.ShowCart)
	tools.Post("/add_recipe", deps.ToolHandler.AddRecipe)
	tools.Post("/place_order", deps.ToolHandler.PlaceOrder)
	tools.Post("/cancel_order", deps.ToolHandler.CancelOrder)
	tools.Post("/order_status", deps.ToolHandler.OrderStatus)

	// Operator view
	app.Get("/admin/orders", deps.AdminHandler.OrdersPage)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	log.Fatal(app.Listen(":" + cfg.Port))
}
