package handler

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/CuCryptos/cruise-photos/helper"
	"github.com/CuCryptos/cruise-photos/payment"
	"github.com/CuCryptos/cruise-photos/repository"
)

// Handlers wires the repositories and external adapters into the request
// handlers. Everything is constructed once at boot and injected; no handler
// reaches for globals.
type Handlers struct {
	Auth     *AuthHandler
	Gallery  *GalleryHandler
	Checkout *CheckoutHandler
	Download *DownloadHandler
	Order    *OrderHandler
	Session  *SessionHandler
	Table    *TableHandler
	Photo    *PhotoHandler
	QR       *QRHandler
	Feed     *GalleryFeed

	Orders *repository.OrderRepo
	Photos *repository.PhotoRepo
}

func NewHandlers(db *gorm.DB, gateway payment.Gateway, mailer Mailer, storage helper.PhotoStorage, rdb *redis.Client) *Handlers {
	sessions := repository.NewSessionRepo(db)
	tables := repository.NewTableRepo(db)
	photos := repository.NewPhotoRepo(db)
	orders := repository.NewOrderRepo(db)
	items := repository.NewOrderItemRepo(db)

	feed := NewGalleryFeed(rdb)

	return &Handlers{
		Auth:     NewAuthHandler(),
		Gallery:  NewGalleryHandler(tables),
		Checkout: NewCheckoutHandler(photos, orders, items, gateway, mailer),
		Download: NewDownloadHandler(items),
		Order:    NewOrderHandler(orders, mailer),
		Session:  NewSessionHandler(sessions),
		Table:    NewTableHandler(tables, mailer),
		Photo:    NewPhotoHandler(photos, tables, storage, rdb, feed),
		QR:       NewQRHandler(),
		Feed:     feed,

		Orders: orders,
		Photos: photos,
	}
}
