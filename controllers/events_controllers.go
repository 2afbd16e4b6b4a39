package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // tighten per deployment
	},
}

type EventController struct {
	Hub      *events.Hub
	Sessions *services.SessionService
}

func NewEventController(hub *events.Hub, sessions *services.SessionService) *EventController {
	return &EventController{Hub: hub, Sessions: sessions}
}

// StaffSocket -> staff subscribe to their restaurant's channel. Identity
// comes from the websocket auth middleware.
func (ec *EventController) StaffSocket(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := events.NewClient(ws)
	client.Serve(ec.Hub, actor.RestaurantID)
}

// CustomerSocket -> the order-tracking view subscribes with its session
// token; the channel is the same per-restaurant one staff use.
func (ec *EventController) CustomerSocket(c *gin.Context) {
	session, err := ec.Sessions.Verify(sessionToken(c))
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := events.NewClient(ws)
	client.Serve(ec.Hub, session.RestaurantID)
}
