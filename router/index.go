package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"

	"github.com/CuCryptos/cruise-photos/handler"
	"github.com/CuCryptos/cruise-photos/middleware"
	"github.com/CuCryptos/cruise-photos/validate"
)

func SetupRoutes(app *fiber.App, h *handler.Handlers, rdb *redis.Client) {
	// Guest storefront
	app.Get("/gallery/:code", logger.New(), middleware.GalleryCache(rdb), h.Gallery.Get)
	app.Post("/checkout", logger.New(), validate.Checkout(), h.Checkout.Checkout)
	app.Get("/download/:token", logger.New(), h.Download.Resolve)
	app.Post("/orders/:orderId/resend", logger.New(), validate.GetById("orderId"), h.Order.Resend)
	app.Get("/ws/gallery/:tableId", websocket.New(h.Feed.Serve))

	auth := app.Group("/auth", logger.New())
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)

	// Admin console
	sessions := app.Group("/sessions", logger.New())
	sessions.Get("/", middleware.Protected(), h.Session.List)
	sessions.Post("/", middleware.Protected(), validate.CreateSession(), h.Session.Create)
	sessions.Get("/:sessionId", middleware.Protected(), validate.GetById("sessionId"), h.Session.GetById)
	sessions.Get("/:sessionId/tables", middleware.Protected(), validate.GetById("sessionId"), h.Table.ListBySession)
	sessions.Post("/:sessionId/tables", middleware.Protected(), validate.GetById("sessionId"), validate.CreateTable(), h.Table.Create)

	tables := app.Group("/tables", logger.New())
	tables.Post("/:tableId/notify", middleware.Protected(), validate.GetById("tableId"), h.Table.Notify)

	photos := app.Group("/photos", logger.New())
	photos.Post("/", middleware.Protected(), h.Photo.Upload)
	photos.Delete("/:photoId", middleware.Protected(), validate.GetById("photoId"), h.Photo.Delete)

	qr := app.Group("/qr", logger.New())
	qr.Post("/batch", middleware.Protected(), h.QR.Batch)
	qr.Get("/:code", middleware.Protected(), h.QR.Single)

	orders := app.Group("/orders", logger.New())
	orders.Get("/", middleware.Protected(), h.Order.List)
	orders.Get("/stats", middleware.Protected(), h.Order.Stats)
}
