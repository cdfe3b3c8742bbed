package model

import "time"

// Session is one cruise/event. Renames aside, sessions are immutable once
// created and are never deleted in normal operation.
type Session struct {
	DTO
	Name       string    `gorm:"not null" json:"name"`
	CruiseDate time.Time `gorm:"not null" json:"cruiseDate"`
	Tables     []Table   `gorm:"foreignKey:SessionID" json:"tables,omitempty"`
}

type CreateSessionInput struct {
	Name       string `json:"name" validate:"required"`
	CruiseDate string `json:"cruiseDate" validate:"required,datetime=2006-01-02"`
	TableCount int    `json:"tableCount" validate:"omitempty,gte=0,lte=200"`
}
