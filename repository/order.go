package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/CuCryptos/cruise-photos/model"
)

type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreatePending inserts the order row before any payment call is made.
func (r *OrderRepo) CreatePending(order *model.Order) error {
	order.Status = model.OrderStatusPending
	return r.db.Create(order).Error
}

// MarkPaid records the processor order reference and flips the status to
// paid in a single UPDATE guarded on the pending state, so no reader ever
// observes a referenced-but-pending row and a terminal order never moves.
func (r *OrderRepo) MarkPaid(id uint, cloverOrderID string) error {
	result := r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"clover_order_id": cloverOrderID,
			"status":          model.OrderStatusPaid,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// MarkFailed is the other terminal transition; the row is kept for audit.
func (r *OrderRepo) MarkFailed(id uint) error {
	result := r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Update("status", model.OrderStatusFailed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// FindPaidWithItems loads a paid order and its items, for the resend action.
func (r *OrderRepo) FindPaidWithItems(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Items").
		Where("id = ? AND status = ?", id, model.OrderStatusPaid).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) ListWithItems() ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderStats is the admin dashboard rollup.
type OrderStats struct {
	PaidCount    int64 `json:"paidCount"`
	FailedCount  int64 `json:"failedCount"`
	PendingCount int64 `json:"pendingCount"`
	RevenueCents int64 `json:"revenueCents"`
}

func (r *OrderRepo) StatsSince(since time.Time) (*OrderStats, error) {
	var stats OrderStats
	counts := map[string]*int64{
		model.OrderStatusPaid:    &stats.PaidCount,
		model.OrderStatusFailed:  &stats.FailedCount,
		model.OrderStatusPending: &stats.PendingCount,
	}
	for status, dst := range counts {
		if err := r.db.Model(&model.Order{}).
			Where("status = ? AND created_at >= ?", status, since).
			Count(dst).Error; err != nil {
			return nil, err
		}
	}
	var revenue struct{ Total int64 }
	if err := r.db.Model(&model.Order{}).
		Select("COALESCE(SUM(total_cents), 0) as total").
		Where("status = ? AND created_at >= ?", model.OrderStatusPaid, since).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.RevenueCents = revenue.Total
	return &stats, nil
}
