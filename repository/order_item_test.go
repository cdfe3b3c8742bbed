package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/CuCryptos/cruise-photos/model"
)

func TestOrderItemRepo_FindByToken(t *testing.T) {
	t.Run("Given an item When FindByToken Then order and photo ride along", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewOrderItemRepo(db)
		table := seedTableWithPhotos(t, db, "ABC123", 1499)

		var photo model.Photo
		db.First(&photo, "table_id = ?", table.ID)

		order := model.Order{CustomerEmail: "guest@example.com", Status: model.OrderStatusPaid, TotalCents: 1499}
		db.Create(&order)
		item := model.OrderItem{OrderID: order.ID, PhotoID: photo.ID, DownloadToken: "tok-find"}
		db.Create(&item)

		found, err := repo.FindByToken("tok-find")
		if err != nil {
			t.Fatalf("FindByToken failed: %v", err)
		}
		if found.Order.Status != model.OrderStatusPaid {
			t.Errorf("expected preloaded paid order, got %q", found.Order.Status)
		}
		if found.Photo.FullURL != "https://example.test/full.jpg" {
			t.Errorf("expected preloaded photo, got %q", found.Photo.FullURL)
		}
	})

	t.Run("Given no such token When FindByToken Then ErrNotFound", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewOrderItemRepo(db)

		if _, err := repo.FindByToken("nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestOrderItemRepo_StampFirstDownload(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderItemRepo(db)

	order := model.Order{CustomerEmail: "guest@example.com", Status: model.OrderStatusPaid, TotalCents: 1499}
	db.Create(&order)
	item := model.OrderItem{OrderID: order.ID, PhotoID: 1, DownloadToken: "tok-stamp"}
	db.Create(&item)

	first := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := repo.StampFirstDownload(item.ID, first); err != nil {
		t.Fatalf("first stamp failed: %v", err)
	}

	// A later download must not move the stamp.
	if err := repo.StampFirstDownload(item.ID, time.Now()); err != nil {
		t.Fatalf("second stamp errored: %v", err)
	}

	var stored model.OrderItem
	db.First(&stored, item.ID)
	if stored.DownloadedAt == nil {
		t.Fatal("downloaded_at was not set")
	}
	if !stored.DownloadedAt.Truncate(time.Second).Equal(first) {
		t.Errorf("stamp moved on repeat download: got %v, want %v", stored.DownloadedAt, first)
	}
}
