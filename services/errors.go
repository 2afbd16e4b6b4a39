package services

import "errors"

// Failure taxonomy returned by the session and order services. All of these
// are routine outcomes recovered at the controller boundary, never panics.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("you do not have permission to act on this restaurant's orders")
	ErrSessionExpired    = errors.New("your table session has expired, please scan the table code again")
	ErrSessionEnded      = errors.New("your table session has ended, please scan the table code again")
	ErrLocationRejected  = errors.New("location could not be verified, please enable location services near the restaurant and retry")
	ErrInvalidTransition = errors.New("order status change is not allowed from its current state, refresh the order")
	ErrItemUnavailable   = errors.New("one or more menu items are unavailable")
	ErrCrossTenant       = errors.New("menu item belongs to a different restaurant")
	ErrConflict          = errors.New("order was changed by someone else, refetch and retry")
	ErrTargetNotActive   = errors.New("target table has no active session")
	ErrNoItems           = errors.New("order must contain at least one item")
)

// StaffContext is the externally-verified actor identity the core trusts.
// Credential verification itself happens in the auth middleware.
type StaffContext struct {
	UserID       uint
	RestaurantID uint
	IsStaff      bool
}
