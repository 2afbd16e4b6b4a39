package events

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Event types published on restaurant channels.
const (
	EventNewOrder           = "new_order"
	EventOrderStatusUpdated = "order_status_updated"
	EventTreatReceived      = "treat_received"
	EventSessionStarted     = "session_started"
	EventSessionEnded       = "session_ended"
	EventSessionExpired     = "session_expired"
	EventTableUpdate        = "table_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to the clients subscribed to a restaurant's channel.
// Delivery is at-most-once, best effort: a subscriber whose buffer is full
// is skipped so publishers never block on slow consumers. Clients are
// expected to reconcile through the order read path, not rely on events.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*Client]struct{})}
}

// ChannelName returns the wire identifier of a restaurant's channel.
func ChannelName(restaurantID uint) string {
	return fmt.Sprintf("restaurant_%d", restaurantID)
}

func (h *Hub) Subscribe(c *Client, restaurantID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[restaurantID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[restaurantID] = room
	}
	room[c] = struct{}{}
}

// Unsubscribe removes the client from the restaurant's channel and closes
// its send queue. Safe to call more than once for the same client.
func (h *Hub) Unsubscribe(c *Client, restaurantID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[restaurantID]
	if !ok {
		return
	}
	if _, member := room[c]; !member {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, restaurantID)
	}
	close(c.send)
}

// Publish delivers the event to every client currently subscribed to the
// restaurant's channel and no others.
func (h *Hub) Publish(restaurantID uint, event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		log.Printf("events: marshal %s failed: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[restaurantID] {
		select {
		case c.send <- payload:
		default:
			// Slow consumer, drop rather than block the publisher.
			log.Printf("events: dropped %s for a subscriber of %s", event, ChannelName(restaurantID))
		}
	}
}

// Subscribers reports how many clients are on the restaurant's channel.
func (h *Hub) Subscribers(restaurantID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[restaurantID])
}
