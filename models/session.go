package models

import "time"

const (
	SessionActive  = "active"
	SessionExpired = "expired"
	SessionEnded   = "ended"
)

// Session is one customer's time-boxed occupancy of a table. The bearer
// Token is the capability credential handed to the customer device; at most
// one session per table is active at any instant.
type Session struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TableID      uint      `gorm:"not null;index" json:"table_id"`
	Table        Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Token        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
