package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a placed order. OrderNumber is sequential and unique per
// restaurant. The *At timestamps are stamped exactly once, on first entry
// to the matching status. Items are immutable after creation; the only
// correction path is cancel and re-order.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	RestaurantID  uint            `gorm:"not null;uniqueIndex:idx_restaurant_order_number,priority:1" json:"restaurant_id"`
	OrderNumber   uint            `gorm:"not null;uniqueIndex:idx_restaurant_order_number,priority:2" json:"order_number"`
	SessionID     uint            `gorm:"not null;index" json:"session_id"`
	Session       Session         `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableID       uint            `gorm:"not null;index" json:"table_id"`
	Table         Table           `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string          `gorm:"type:varchar(30)" json:"payment_method"` // informational tag only
	IsTreat       bool            `gorm:"not null;default:false" json:"is_treat"`
	OriginTableID *uint           `json:"origin_table_id,omitempty"`
	ConfirmedAt   *time.Time      `json:"confirmed_at,omitempty"`
	PreparingAt   *time.Time      `json:"preparing_at,omitempty"`
	ReadyAt       *time.Time      `json:"ready_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
}
