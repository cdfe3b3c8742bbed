package model

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// Order is one checkout attempt. Status moves exactly once from pending to
// paid or failed and is terminal after that; failed rows are kept for audit.
type Order struct {
	DTO
	CloverOrderID *string     `json:"cloverOrderId,omitempty"`
	CustomerEmail string      `gorm:"not null" json:"customerEmail"`
	Status        string      `gorm:"not null;default:'pending'" json:"status"`
	TotalCents    int64       `gorm:"not null" json:"totalCents"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type CheckoutInput struct {
	PhotoIDs    []uint `json:"photoIds" validate:"required,min=1,dive,gt=0"`
	Email       string `json:"email" validate:"required,email"`
	SourceToken string `json:"sourceToken" validate:"required"`
}
