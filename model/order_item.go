package model

import "time"

// OrderItem is one purchased photo. Items exist only for paid orders; the
// download token is minted once and never regenerated. DownloadedAt records
// the first successful download only.
type OrderItem struct {
	DTO
	OrderID       uint       `gorm:"not null;index" json:"orderId"`
	Order         Order      `gorm:"foreignKey:OrderID" json:"-"`
	PhotoID       uint       `gorm:"not null" json:"photoId"`
	Photo         Photo      `gorm:"foreignKey:PhotoID" json:"-"`
	DownloadToken string     `gorm:"size:36;uniqueIndex;not null" json:"downloadToken"`
	DownloadedAt  *time.Time `json:"downloadedAt,omitempty"`
}
