package models

// OrderCounter allocates sequential order numbers per restaurant. The row
// is incremented inside the order-creation transaction, so its write lock
// serializes allocation per tenant.
type OrderCounter struct {
	RestaurantID uint `gorm:"primaryKey" json:"restaurant_id"`
	NextNumber   uint `gorm:"not null;default:1" json:"next_number"`
}
