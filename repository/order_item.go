package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/CuCryptos/cruise-photos/model"
)

type OrderItemRepo struct {
	db *gorm.DB
}

func NewOrderItemRepo(db *gorm.DB) *OrderItemRepo {
	return &OrderItemRepo{db: db}
}

// CreateBatch inserts all items of a paid order in one statement.
func (r *OrderItemRepo) CreateBatch(items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// FindByToken loads an item with its order and photo for the download gate.
func (r *OrderItemRepo) FindByToken(token string) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.
		Preload("Order").
		Preload("Photo").
		Where("download_token = ?", token).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// StampFirstDownload sets downloaded_at only when it is still null. Repeat
// downloads in the validity window are allowed and leave the stamp alone.
func (r *OrderItemRepo) StampFirstDownload(id uint, at time.Time) error {
	return r.db.Model(&model.OrderItem{}).
		Where("id = ? AND downloaded_at IS NULL", id).
		Update("downloaded_at", at).Error
}
