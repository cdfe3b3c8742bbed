package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

// DownloadWindow is how long a token stays redeemable after issuance.
const DownloadWindow = 7 * 24 * time.Hour

type DownloadHandler struct {
	items *repository.OrderItemRepo
}

func NewDownloadHandler(items *repository.OrderItemRepo) *DownloadHandler {
	return &DownloadHandler{items: items}
}

// Resolve gates a download token: the token must exist, its order must be
// paid, and the 7-day window from issuance must still be open. Repeat
// downloads inside the window are fine; only the first one is stamped.
func (h *DownloadHandler) Resolve(c *fiber.Ctx) error {
	token := c.Params("token")

	item, err := h.items.FindByToken(token)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Invalid download token", errors.New("unknown token"))
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not look up download", err)
	}

	// A structurally valid token for a pending or failed order never
	// resolves, no matter how fresh it is.
	if item.Order.Status != model.OrderStatusPaid {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Order not paid", errors.New("order is not paid"))
	}

	if time.Now().After(item.CreatedAt.Add(DownloadWindow)) {
		return utils.ErrorResponse(c, fiber.StatusGone, "Download link expired", errors.New("token past expiry"))
	}

	if item.DownloadedAt == nil {
		if err := h.items.StampFirstDownload(item.ID, time.Now()); err != nil {
			// Reporting-only stamp; the download still goes through.
			log.Printf("download token %s: first-download stamp failed: %v", token, err)
		}
	}

	if item.Photo.FullURL == "" {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Photo not found", errors.New("missing asset url"))
	}

	return c.Redirect(item.Photo.FullURL, fiber.StatusFound)
}
