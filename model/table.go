package model

// Table is a seating group within a session. AccessCode is the only
// guest-facing credential: 6 chars, stored upper-case, unique system-wide.
type Table struct {
	DTO
	SessionID   uint    `gorm:"not null;index" json:"sessionId"`
	Session     Session `gorm:"foreignKey:SessionID" json:"-"`
	TableNumber string  `gorm:"not null" json:"tableNumber"`
	AccessCode  string  `gorm:"size:6;uniqueIndex;not null" json:"accessCode"`
	Photos      []Photo `gorm:"foreignKey:TableID" json:"photos,omitempty"`
}

type CreateTableInput struct {
	TableNumber string `json:"tableNumber" validate:"required"`
}
