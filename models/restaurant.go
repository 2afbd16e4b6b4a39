package models

import "time"

// Restaurant is the tenant root: every table, session, menu and order
// belongs to exactly one restaurant. Restaurants are deactivated instead
// of deleted so historical orders stay intact.
type Restaurant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Latitude       float64   `gorm:"not null" json:"latitude"`
	Longitude      float64   `gorm:"not null" json:"longitude"`
	GeofenceRadius float64   `gorm:"not null;default:100" json:"geofence_radius"` // meters
	Active         bool      `gorm:"not null;default:true" json:"active"`
	Settings       string    `gorm:"type:text" json:"settings"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
