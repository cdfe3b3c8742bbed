package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

type OrderHandler struct {
	orders *repository.OrderRepo
	mailer Mailer
}

func NewOrderHandler(orders *repository.OrderRepo, mailer Mailer) *OrderHandler {
	return &OrderHandler{orders: orders, mailer: mailer}
}

// Resend re-sends the download links for a paid order. Unknown, pending and
// failed orders all look the same from outside: not found.
func (h *OrderHandler) Resend(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing order id", errors.New("locals not set"))
	}

	order, err := h.orders.FindPaidWithItems(uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found or not paid", errors.New("no paid order"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load order", err)
	}

	links := make([]utils.DownloadLink, 0, len(order.Items))
	for _, item := range order.Items {
		links = append(links, utils.DownloadLink{PhotoID: item.PhotoID, Token: item.DownloadToken})
	}

	if err := h.mailer.SendDownloadRecovery(order.CustomerEmail, links); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send email", err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// List returns every order with its items, newest first, for the admin
// dashboard.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.ListWithItems()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load orders", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// Stats is the 30-day dashboard rollup.
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.orders.StatsSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load stats", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
