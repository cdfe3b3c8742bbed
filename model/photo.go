package model

// Photo is one purchasable image. Price is fixed at upload time from the
// server-side default and is never guest-editable.
type Photo struct {
	DTO
	TableID            uint   `gorm:"not null;index" json:"tableId"`
	Table              Table  `gorm:"foreignKey:TableID" json:"-"`
	CloudinaryPublicID string `gorm:"not null" json:"-"`
	ThumbnailURL       string `gorm:"not null" json:"thumbnailUrl"`
	FullURL            string `gorm:"not null" json:"-"`
	PriceCents         int64  `gorm:"not null" json:"priceCents"`
}
