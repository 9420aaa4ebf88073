package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"travelrental/internal/config"
	applog "travelrental/internal/log"
)

// NewApp builds the fiber app with middleware and every route.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "travelrental",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(accessLog())
	app.Use(recover.New())
	app.Use(helmet.New())

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.api.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(errorBody{
				Code:    "TOO_MANY_REQUESTS",
				Message: "rate limit exceeded, retry soon",
			})
		},
	}))

	// static segments before :productId
	api.Get("/products/members", RequireMember(), d.ProductHandler.Mine)
	api.Get("/products/top/views", d.ProductHandler.TopViews)
	api.Get("/products/top/rates", d.ProductHandler.TopRates)
	api.Get("/products/top/free", d.ProductHandler.TopByBaseFee)

	api.Post("/products", RequireMember(), d.ProductHandler.Create)
	api.Get("/products/:productId", OptionalMember(), d.ProductHandler.Detail)
	api.Patch("/products/:productId", RequireMember(), d.ProductHandler.Update)
	api.Delete("/products/:productId", RequireMember(), d.ProductHandler.Delete)

	api.Get("/members", RequireMember(), d.MemberHandler.Me)
	api.Patch("/members", RequireMember(), d.MemberHandler.Update)
	api.Get("/members/interests", RequireMember(), d.MemberHandler.ListInterests)
	api.Post("/members/interests/:productId", RequireMember(), d.MemberHandler.SaveInterest)
	api.Delete("/members/interests/:productId", RequireMember(), d.MemberHandler.DeleteInterest)

	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/reservations", RequireMember(), d.ReservationHandler.List)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Code: "NOT_FOUND", Message: "route not found"})
	})

	return app
}

func accessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler settle the status before it is logged
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		applog.Info(c, "http.request", map[string]any{"latency_ms": time.Since(start).Milliseconds()})
		return nil
	}
}
