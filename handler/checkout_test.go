package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/validate"
)

func newCheckoutApp(db *gorm.DB, gateway *fakeGateway, mailer *fakeMailer) *fiber.App {
	app := fiber.New()
	h := NewCheckoutHandler(
		repository.NewPhotoRepo(db),
		repository.NewOrderRepo(db),
		repository.NewOrderItemRepo(db),
		gateway,
		mailer,
	)
	app.Post("/checkout", validate.Checkout(), h.Checkout)
	return app
}

func postCheckout(t *testing.T, app *fiber.App, body map[string]any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", "/checkout", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	var parsed map[string]any
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res.StatusCode, parsed
}

func TestCheckout(t *testing.T) {
	t.Run("Given three priced photos When checkout succeeds Then order is paid with one item per photo", func(t *testing.T) {
		db := newTestDB(t)
		photos := seedTableWithPhotos(t, db, "AAAA22", 1499, 1499, 1499)
		gateway := &fakeGateway{}
		mailer := &fakeMailer{}
		app := newCheckoutApp(db, gateway, mailer)

		status, body := postCheckout(t, app, map[string]any{
			"photoIds":    []uint{photos[0].ID, photos[1].ID, photos[2].ID},
			"email":       "guest@example.com",
			"sourceToken": "tok_visa",
		})

		if status != fiber.StatusOK {
			t.Fatalf("status = %d, want 200 (body %v)", status, body)
		}
		if body["success"] != true {
			t.Fatalf("success = %v, want true", body["success"])
		}
		if body["chargeId"] != "CHG-1" {
			t.Errorf("chargeId = %v, want CHG-1", body["chargeId"])
		}

		var order model.Order
		if err := db.Preload("Items").First(&order).Error; err != nil {
			t.Fatalf("load order: %v", err)
		}
		if order.Status != model.OrderStatusPaid {
			t.Errorf("order status = %q, want paid", order.Status)
		}
		if order.TotalCents != 4497 {
			t.Errorf("total = %d, want 4497", order.TotalCents)
		}
		if order.CloverOrderID == nil || *order.CloverOrderID != "CLV-REMOTE-1" {
			t.Errorf("clover order id = %v, want CLV-REMOTE-1", order.CloverOrderID)
		}
		if len(order.Items) != 3 {
			t.Fatalf("items = %d, want 3", len(order.Items))
		}
		seen := map[string]bool{}
		for _, item := range order.Items {
			if item.DownloadToken == "" {
				t.Error("item has empty download token")
			}
			if seen[item.DownloadToken] {
				t.Errorf("duplicate download token %q", item.DownloadToken)
			}
			seen[item.DownloadToken] = true
		}

		if gateway.lastAmount != 4497 {
			t.Errorf("charged amount = %d, want 4497", gateway.lastAmount)
		}
		if want := fmt.Sprintf("order-%d", order.ID); gateway.lastIdemKey != want {
			t.Errorf("idempotency key = %q, want %q", gateway.lastIdemKey, want)
		}
		if len(mailer.confirmations) != 1 {
			t.Fatalf("confirmation emails = %d, want 1", len(mailer.confirmations))
		}
		if got := mailer.confirmations[0]; got.To != "guest@example.com" || len(got.Links) != 3 {
			t.Errorf("confirmation = %+v, want 3 links to guest@example.com", got)
		}
	})

	t.Run("Given a declined card When checkout runs Then order fails with no items and a generic message", func(t *testing.T) {
		db := newTestDB(t)
		photos := seedTableWithPhotos(t, db, "BBBB33", 1499)
		gateway := &fakeGateway{failCharge: true}
		mailer := &fakeMailer{}
		app := newCheckoutApp(db, gateway, mailer)

		status, body := postCheckout(t, app, map[string]any{
			"photoIds":    []uint{photos[0].ID},
			"email":       "guest@example.com",
			"sourceToken": "tok_declined",
		})

		if status != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["message"] != "Payment failed" {
			t.Errorf("message = %v, want Payment failed", body["message"])
		}

		var order model.Order
		if err := db.First(&order).Error; err != nil {
			t.Fatalf("load order: %v", err)
		}
		if order.Status != model.OrderStatusFailed {
			t.Errorf("order status = %q, want failed", order.Status)
		}
		var itemCount int64
		db.Model(&model.OrderItem{}).Count(&itemCount)
		if itemCount != 0 {
			t.Errorf("order items = %d, want 0", itemCount)
		}
		if len(mailer.confirmations) != 0 {
			t.Errorf("confirmation emails = %d, want 0", len(mailer.confirmations))
		}
	})

	t.Run("Given gateway order creation fails Then order fails before any charge", func(t *testing.T) {
		db := newTestDB(t)
		photos := seedTableWithPhotos(t, db, "CCCC44", 1499)
		gateway := &fakeGateway{failCreateOrder: true}
		app := newCheckoutApp(db, gateway, &fakeMailer{})

		status, _ := postCheckout(t, app, map[string]any{
			"photoIds":    []uint{photos[0].ID},
			"email":       "guest@example.com",
			"sourceToken": "tok_visa",
		})

		if status != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if gateway.chargeCalls != 0 {
			t.Errorf("charge calls = %d, want 0", gateway.chargeCalls)
		}
		var order model.Order
		if err := db.First(&order).Error; err != nil {
			t.Fatalf("load order: %v", err)
		}
		if order.Status != model.OrderStatusFailed {
			t.Errorf("order status = %q, want failed", order.Status)
		}
	})

	t.Run("Given an empty cart Then validation rejects the request before any order exists", func(t *testing.T) {
		db := newTestDB(t)
		gateway := &fakeGateway{}
		app := newCheckoutApp(db, gateway, &fakeMailer{})

		status, _ := postCheckout(t, app, map[string]any{
			"photoIds":    []uint{},
			"email":       "guest@example.com",
			"sourceToken": "tok_visa",
		})

		if status != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		var orderCount int64
		db.Model(&model.Order{}).Count(&orderCount)
		if orderCount != 0 {
			t.Errorf("orders = %d, want 0", orderCount)
		}
		if gateway.createCalls != 0 {
			t.Errorf("gateway calls = %d, want 0", gateway.createCalls)
		}
	})

	t.Run("Given only unknown photo ids Then checkout rejects with Invalid photos", func(t *testing.T) {
		db := newTestDB(t)
		seedTableWithPhotos(t, db, "DDDD55", 1499)
		app := newCheckoutApp(db, &fakeGateway{}, &fakeMailer{})

		status, body := postCheckout(t, app, map[string]any{
			"photoIds":    []uint{9998, 9999},
			"email":       "guest@example.com",
			"sourceToken": "tok_visa",
		})

		if status != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["message"] != "Invalid photos" {
			t.Errorf("message = %v, want Invalid photos", body["message"])
		}
		var orderCount int64
		db.Model(&model.Order{}).Count(&orderCount)
		if orderCount != 0 {
			t.Errorf("orders = %d, want 0", orderCount)
		}
	})

	t.Run("Given a stale id mixed in Then the resolved subset is charged", func(t *testing.T) {
		db := newTestDB(t)
		photos := seedTableWithPhotos(t, db, "EEEE66", 1499, 2000)
		gateway := &fakeGateway{}
		app := newCheckoutApp(db, gateway, &fakeMailer{})

		status, _ := postCheckout(t, app, map[string]any{
			"photoIds":    []uint{photos[0].ID, 9999},
			"email":       "guest@example.com",
			"sourceToken": "tok_visa",
		})

		if status != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if gateway.lastAmount != 1499 {
			t.Errorf("charged amount = %d, want 1499", gateway.lastAmount)
		}
		var itemCount int64
		db.Model(&model.OrderItem{}).Count(&itemCount)
		if itemCount != 1 {
			t.Errorf("order items = %d, want 1", itemCount)
		}
	})
}
