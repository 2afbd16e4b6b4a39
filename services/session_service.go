package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/geo"
	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

// SessionService manages customer table sessions: the gate that authorizes
// order placement. Expiry is lazy, checked on every read; no timer is
// required for correctness.
type SessionService struct {
	DB          *gorm.DB
	Hub         *events.Hub
	Window      time.Duration
	MaxLifetime time.Duration
}

func NewSessionService(db *gorm.DB, hub *events.Hub, window, maxLifetime time.Duration) *SessionService {
	return &SessionService{DB: db, Hub: hub, Window: window, MaxLifetime: maxLifetime}
}

// Start resolves the table by scan token, verifies the device position
// against the restaurant geofence and creates a fresh session. Any prior
// active session on the table is ended in the same transaction: replacement,
// not stacking, so two customers never silently share one session record.
func (ss *SessionService) Start(scanToken string, deviceLat, deviceLng *float64) (*models.Session, error) {
	var table models.Table
	if err := ss.DB.Preload("Restaurant").
		Where("scan_token = ? AND active = ?", scanToken, true).
		First(&table).Error; err != nil {
		return nil, ErrNotFound
	}
	if !table.Restaurant.Active {
		return nil, ErrNotFound
	}

	// Missing coordinates fail closed, never default to trusted.
	if deviceLat == nil || deviceLng == nil {
		return nil, ErrLocationRejected
	}
	if !geo.WithinRadius(table.Restaurant.Latitude, table.Restaurant.Longitude,
		*deviceLat, *deviceLng, table.Restaurant.GeofenceRadius) {
		return nil, ErrLocationRejected
	}

	now := time.Now()
	session := models.Session{
		TableID:      table.ID,
		RestaurantID: table.RestaurantID,
		Token:        uuid.NewString(),
		Status:       models.SessionActive,
		ExpiresAt:    now.Add(ss.Window),
	}

	err := ss.DB.Transaction(func(tx *gorm.DB) error {
		// Writing the table row first takes its row lock for the rest of
		// the transaction, so concurrent starts on the same table
		// serialize and exactly one replacement wins.
		if err := tx.Model(&models.Table{}).Where("id = ?", table.ID).
			Update("updated_at", now).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Session{}).
			Where("table_id = ? AND status = ?", table.ID, models.SessionActive).
			Update("status", models.SessionEnded).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	session.Table = table
	utils.InfoLogger.Printf("Session %d started at table %s (restaurant %d)", session.ID, table.TableNumber, table.RestaurantID)
	ss.Hub.Publish(table.RestaurantID, events.EventSessionStarted, map[string]interface{}{
		"table_id":     table.ID,
		"table_number": table.TableNumber,
		"expires_at":   session.ExpiresAt,
	})
	return &session, nil
}

// Verify looks the session up by bearer token and returns its table and
// restaurant context. A read past the expiry time flips the session to
// expired before rejecting (lazy expiry).
func (ss *SessionService) Verify(token string) (*models.Session, error) {
	var session models.Session
	if err := ss.DB.Preload("Table").Preload("Table.Restaurant").
		Where("token = ?", token).First(&session).Error; err != nil {
		return nil, ErrNotFound
	}

	switch session.Status {
	case models.SessionEnded:
		return nil, ErrSessionEnded
	case models.SessionExpired:
		return nil, ErrSessionExpired
	}

	if time.Now().After(session.ExpiresAt) {
		if err := ss.DB.Model(&session).Update("status", models.SessionExpired).Error; err != nil {
			return nil, err
		}
		ss.Hub.Publish(session.RestaurantID, events.EventSessionExpired, map[string]interface{}{
			"table_id": session.TableID,
		})
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Extend pushes the expiry to now + window, capped so the session's total
// lifetime never exceeds MaxLifetime.
func (ss *SessionService) Extend(token string) (time.Time, error) {
	session, err := ss.Verify(token)
	if err != nil {
		return time.Time{}, err
	}

	newExpiry := time.Now().Add(ss.Window)
	if limit := session.CreatedAt.Add(ss.MaxLifetime); newExpiry.After(limit) {
		newExpiry = limit
	}
	if err := ss.DB.Model(session).Update("expires_at", newExpiry).Error; err != nil {
		return time.Time{}, err
	}
	return newExpiry, nil
}

// End closes the session. Idempotent: ending an already ended or expired
// session is a no-op success, which keeps concurrent checkout races simple.
func (ss *SessionService) End(token string) error {
	var session models.Session
	if err := ss.DB.Preload("Table").Where("token = ?", token).First(&session).Error; err != nil {
		return ErrNotFound
	}
	if session.Status != models.SessionActive {
		return nil
	}
	if err := ss.DB.Model(&session).Update("status", models.SessionEnded).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Session %d ended at table %s", session.ID, session.Table.TableNumber)
	ss.Hub.Publish(session.RestaurantID, events.EventSessionEnded, map[string]interface{}{
		"table_id":     session.TableID,
		"table_number": session.Table.TableNumber,
	})
	return nil
}

// EndForTable lets staff free a table directly. Ending a table with no
// active session is a no-op success.
func (ss *SessionService) EndForTable(restaurantID, tableID uint) error {
	var table models.Table
	if err := ss.DB.Where("id = ? AND restaurant_id = ?", tableID, restaurantID).
		First(&table).Error; err != nil {
		return ErrNotFound
	}

	var session models.Session
	err := ss.DB.Where("table_id = ? AND status = ?", tableID, models.SessionActive).
		First(&session).Error
	if err != nil {
		return nil
	}
	if err := ss.DB.Model(&session).Update("status", models.SessionEnded).Error; err != nil {
		return err
	}
	ss.Hub.Publish(restaurantID, events.EventSessionEnded, map[string]interface{}{
		"table_id":     tableID,
		"table_number": table.TableNumber,
	})
	return nil
}
