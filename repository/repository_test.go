package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CuCryptos/cruise-photos/model"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq.Add(1))
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

func seedTableWithPhotos(t *testing.T, db *gorm.DB, code string, prices ...int64) *model.Table {
	t.Helper()
	session := model.Session{Name: "Sunset Dinner Cruise"}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	table := model.Table{SessionID: session.ID, TableNumber: "Table 1", AccessCode: code}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	for i, price := range prices {
		photo := model.Photo{
			TableID:            table.ID,
			CloudinaryPublicID: fmt.Sprintf("sessions/test/photo-%s-%d", code, i),
			ThumbnailURL:       "https://example.test/thumb.jpg",
			FullURL:            "https://example.test/full.jpg",
			PriceCents:         price,
		}
		if err := db.Create(&photo).Error; err != nil {
			t.Fatalf("seed photo: %v", err)
		}
	}
	return &table
}
