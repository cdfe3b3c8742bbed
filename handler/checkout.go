package handler

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/payment"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

// Mailer is the notification surface the core calls through; failures after
// a captured payment are logged, never propagated.
type Mailer interface {
	SendOrderConfirmation(to string, orderID uint, totalCents int64, links []utils.DownloadLink) error
	SendDownloadRecovery(to string, links []utils.DownloadLink) error
	SendGalleryAccess(to, accessCode, cruiseName, tableNumber string) error
}

type CheckoutHandler struct {
	photos  *repository.PhotoRepo
	orders  *repository.OrderRepo
	items   *repository.OrderItemRepo
	gateway payment.Gateway
	mailer  Mailer
}

func NewCheckoutHandler(
	photos *repository.PhotoRepo,
	orders *repository.OrderRepo,
	items *repository.OrderItemRepo,
	gateway payment.Gateway,
	mailer Mailer,
) *CheckoutHandler {
	return &CheckoutHandler{
		photos:  photos,
		orders:  orders,
		items:   items,
		gateway: gateway,
		mailer:  mailer,
	}
}

// Checkout runs the purchase: re-fetch the authoritative photo rows, persist
// a pending order, charge Clover, then flip the order to its terminal state.
// Ids that no longer resolve are dropped and the subset is charged, matching
// the storefront cart's behavior when photos disappear server-side.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	input, ok := c.Locals("checkoutInput").(model.CheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Missing checkout input", errors.New("locals not set"))
	}

	photos, err := h.photos.FindByIDs(input.PhotoIDs)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load photos", err)
	}
	if len(photos) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid photos", errors.New("no requested photo exists"))
	}

	var total int64
	for _, photo := range photos {
		total += photo.PriceCents
	}

	// The pending row must exist before any money moves.
	order := model.Order{
		CustomerEmail: input.Email,
		TotalCents:    total,
	}
	if err := h.orders.CreatePending(&order); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create order", err)
	}

	lineItems := make([]payment.LineItem, 0, len(photos))
	for _, photo := range photos {
		lineItems = append(lineItems, payment.LineItem{
			Name:       "Digital Photo",
			PriceCents: photo.PriceCents,
			Quantity:   1,
		})
	}

	remoteOrder, err := h.gateway.CreateOrder(lineItems, input.Email)
	if err != nil {
		return h.failOrder(c, order.ID, err)
	}

	idempotencyKey := fmt.Sprintf("order-%d", order.ID)
	charge, err := h.gateway.Charge(input.SourceToken, total, remoteOrder.ID, input.Email, idempotencyKey)
	if err != nil {
		return h.failOrder(c, order.ID, err)
	}

	// One write sets the processor reference and the paid status together,
	// so no reader sees a referenced-but-pending row.
	if err := h.orders.MarkPaid(order.ID, remoteOrder.ID); err != nil {
		log.Printf("order %d: charge %s captured but paid transition failed: %v", order.ID, charge.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order", err)
	}

	// From here the charge is real; item or email trouble is logged and left
	// for the resend action, never rolled back.
	items := make([]model.OrderItem, 0, len(photos))
	links := make([]utils.DownloadLink, 0, len(photos))
	for _, photo := range photos {
		token := uuid.NewString()
		items = append(items, model.OrderItem{
			OrderID:       order.ID,
			PhotoID:       photo.ID,
			DownloadToken: token,
		})
		links = append(links, utils.DownloadLink{PhotoID: photo.ID, Token: token})
	}
	if err := h.items.CreateBatch(items); err != nil {
		log.Printf("order %d: creating order items failed: %v", order.ID, err)
		links = nil
	}

	if links != nil {
		if err := h.mailer.SendOrderConfirmation(input.Email, order.ID, total, links); err != nil {
			log.Printf("order %d: confirmation email failed: %v", order.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"orderId":  order.ID,
		"chargeId": charge.ID,
	})
}

func (h *CheckoutHandler) failOrder(c *fiber.Ctx, orderID uint, gatewayErr error) error {
	if err := h.orders.MarkFailed(orderID); err != nil {
		log.Printf("order %d: failed transition error: %v", orderID, err)
	}
	log.Printf("order %d: payment error: %v", orderID, gatewayErr)
	// Processor details stay in the logs; guests get the generic message.
	return utils.ErrorResponse(c, fiber.StatusBadRequest, "Payment failed", errors.New("payment was not completed"))
}
