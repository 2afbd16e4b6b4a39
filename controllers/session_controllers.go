package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/services"
	"github.com/yeremiapane/dinehub/utils"
)

type SessionController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
}

func NewSessionController(db *gorm.DB, sessions *services.SessionService) *SessionController {
	return &SessionController{DB: db, Sessions: sessions}
}

// sessionToken pulls the customer bearer token from the request. Header
// first, query as a fallback for websocket upgrades.
func sessionToken(c *gin.Context) string {
	if token := c.GetHeader("X-Session-Token"); token != "" {
		return token
	}
	return c.Query("session_token")
}

// StartSession -> customer scanned a table QR code
func (sc *SessionController) StartSession(c *gin.Context) {
	var req struct {
		ScanToken string   `json:"scan_token" binding:"required"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Sessions.Start(req.ScanToken, req.Latitude, req.Longitude)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Session started", gin.H{
		"token":        session.Token,
		"expires_at":   session.ExpiresAt,
		"table_id":     session.TableID,
		"table_number": session.Table.TableNumber,
	})
}

// VerifySession -> customer device checks its session is still usable
func (sc *SessionController) VerifySession(c *gin.Context) {
	session, err := sc.Sessions.Verify(sessionToken(c))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session active", gin.H{
		"table_id":      session.TableID,
		"table_number":  session.Table.TableNumber,
		"restaurant_id": session.RestaurantID,
		"expires_at":    session.ExpiresAt,
	})
}

// ExtendSession -> push expiry forward, capped at the maximum lifetime
func (sc *SessionController) ExtendSession(c *gin.Context) {
	newExpiry, err := sc.Sessions.Extend(sessionToken(c))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session extended", gin.H{
		"expires_at": newExpiry,
	})
}

// EndSession -> customer checkout; ending twice is still a success
func (sc *SessionController) EndSession(c *gin.Context) {
	if err := sc.Sessions.End(sessionToken(c)); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session ended", nil)
}

// EndTableSession -> staff frees a table from the floor plan
func (sc *SessionController) EndTableSession(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}
	if err := sc.Sessions.EndForTable(actor.RestaurantID, tableID); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table session ended", gin.H{"table_id": tableID})
}
