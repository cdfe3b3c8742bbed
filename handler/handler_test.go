package handler

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/payment"
	"github.com/CuCryptos/cruise-photos/utils"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Session{}, &model.Table{}, &model.Photo{},
		&model.Order{}, &model.OrderItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedTableWithPhotos(t *testing.T, db *gorm.DB, code string, prices ...int64) []model.Photo {
	t.Helper()
	session := model.Session{Name: "Sunset Dinner Cruise"}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	table := model.Table{SessionID: session.ID, TableNumber: "Table 1", AccessCode: code}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	photos := make([]model.Photo, 0, len(prices))
	for i, price := range prices {
		photo := model.Photo{
			TableID:            table.ID,
			CloudinaryPublicID: fmt.Sprintf("sessions/test/photo-%s-%d", code, i),
			ThumbnailURL:       "https://example.test/thumb.jpg",
			FullURL:            fmt.Sprintf("https://example.test/full-%s-%d.jpg", code, i),
			PriceCents:         price,
		}
		if err := db.Create(&photo).Error; err != nil {
			t.Fatalf("seed photo: %v", err)
		}
		photos = append(photos, photo)
	}
	return photos
}

// fakeGateway stands in for Clover.
type fakeGateway struct {
	failCreateOrder bool
	failCharge      bool

	createCalls    int
	chargeCalls    int
	lastAmount     int64
	lastIdemKey    string
	lastRemoteID   string
	lastLineItems  []payment.LineItem
	lastSourceUsed string
}

func (g *fakeGateway) CreateOrder(items []payment.LineItem, customerEmail string) (*payment.Order, error) {
	g.createCalls++
	g.lastLineItems = items
	if g.failCreateOrder {
		return nil, &payment.GatewayError{Op: "create order", Status: 502, Message: "gateway unavailable"}
	}
	var total int64
	for _, item := range items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return &payment.Order{ID: "CLV-REMOTE-1", TotalCents: total, State: "open"}, nil
}

func (g *fakeGateway) Charge(sourceToken string, amountCents int64, remoteOrderID, customerEmail, idempotencyKey string) (*payment.ChargeResult, error) {
	g.chargeCalls++
	g.lastAmount = amountCents
	g.lastIdemKey = idempotencyKey
	g.lastRemoteID = remoteOrderID
	g.lastSourceUsed = sourceToken
	if g.failCharge {
		return nil, &payment.GatewayError{Op: "charge", Status: 402, Message: "card declined"}
	}
	return &payment.ChargeResult{ID: "CHG-1", AmountCents: amountCents, Status: "succeeded"}, nil
}

// fakeMailer records sends instead of dialing SMTP.
type fakeMailer struct {
	confirmations []struct {
		To    string
		Order uint
		Total int64
		Links []utils.DownloadLink
	}
	recoveries []struct {
		To    string
		Links []utils.DownloadLink
	}
	galleryInvites int
	failSend       bool
}

func (m *fakeMailer) SendOrderConfirmation(to string, orderID uint, totalCents int64, links []utils.DownloadLink) error {
	if m.failSend {
		return errors.New("smtp down")
	}
	m.confirmations = append(m.confirmations, struct {
		To    string
		Order uint
		Total int64
		Links []utils.DownloadLink
	}{to, orderID, totalCents, links})
	return nil
}

func (m *fakeMailer) SendDownloadRecovery(to string, links []utils.DownloadLink) error {
	if m.failSend {
		return errors.New("smtp down")
	}
	m.recoveries = append(m.recoveries, struct {
		To    string
		Links []utils.DownloadLink
	}{to, links})
	return nil
}

func (m *fakeMailer) SendGalleryAccess(to, accessCode, cruiseName, tableNumber string) error {
	if m.failSend {
		return errors.New("smtp down")
	}
	m.galleryInvites++
	return nil
}
