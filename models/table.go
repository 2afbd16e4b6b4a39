package models

import "time"

// Table is a physical seating unit. ScanToken is the opaque value encoded
// in the QR code on the table; it resolves the table without exposing
// internal IDs and is kept out of JSON payloads.
type Table struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableNumber  string     `gorm:"type:varchar(50);not null" json:"table_number"`
	ScanToken    string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
