// Package repository holds the per-entity data access types. Each repo wraps
// an explicitly injected *gorm.DB; sentinel errors let handlers map store
// failures onto HTTP statuses without inspecting gorm internals.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrNotPending is returned when an order status transition is attempted on
// an order that already left the pending state. Orders move at most once.
var ErrNotPending = errors.New("order is not pending")
