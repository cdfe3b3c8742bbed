package model

import "time"

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TokenClaim struct {
	AdminEmail string `json:"adminEmail"`
}

type ArrayId struct {
	IDs []uint `json:"ids"`
}
