package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

// SessionSweeper proactively flips expired sessions in the background.
// This is a cleanliness optimization only: Verify already enforces expiry
// lazily, so correctness never depends on this loop running.
type SessionSweeper struct {
	DB       *gorm.DB
	Hub      *events.Hub
	StopChan chan struct{}
	Interval time.Duration
}

func NewSessionSweeper(db *gorm.DB, hub *events.Hub) *SessionSweeper {
	return &SessionSweeper{
		DB:       db,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: time.Minute,
	}
}

func (sw *SessionSweeper) Start() {
	go func() {
		ticker := time.NewTicker(sw.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sw.sweep()
			case <-sw.StopChan:
				return
			}
		}
	}()
}

func (sw *SessionSweeper) Stop() {
	close(sw.StopChan)
}

func (sw *SessionSweeper) sweep() {
	var stale []models.Session
	if err := sw.DB.Where("status = ? AND expires_at < ?", models.SessionActive, time.Now()).
		Find(&stale).Error; err != nil {
		utils.ErrorLogger.Printf("session sweep query failed: %v", err)
		return
	}

	for _, session := range stale {
		// Guard on status again so we do not race a concurrent Verify
		// that already expired (or an End that already closed) it.
		res := sw.DB.Model(&models.Session{}).
			Where("id = ? AND status = ?", session.ID, models.SessionActive).
			Update("status", models.SessionExpired)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}
		sw.Hub.Publish(session.RestaurantID, events.EventSessionExpired, map[string]interface{}{
			"table_id": session.TableID,
		})
	}
	if len(stale) > 0 {
		utils.InfoLogger.Printf("Session sweep expired %d stale session(s)", len(stale))
	}
}
