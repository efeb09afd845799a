package ws

import (
	"fmt"
	"log"
	"sync"

	"github.com/trygraphite/platter-sub000/entity"
)

// Event names sent broker -> client.
const (
	EventNewOrder     = "newOrder"
	EventOrderUpdate  = "orderUpdate"
	EventOrderDeleted = "orderDeleted"
	EventWaiterAlert  = "waiterAlert"
	EventRoomJoined   = "roomJoined"
)

// Session is one connected viewer. The websocket adapter implements it; tests
// substitute fakes.
type Session interface {
	ID() string
	Send(event string, payload any) error
}

// OrderTopic is joined by anyone viewing a single order (typically the guest
// who placed it).
func OrderTopic(orderID uint) string {
	return fmt.Sprintf("order:%d", orderID)
}

// RestaurantTopic is joined by staff watching the restaurant's live feed.
func RestaurantTopic(restaurantID uint) string {
	return fmt.Sprintf("restaurant:%d", restaurantID)
}

// Hub routes lifecycle events to topic subscribers. One hub per process,
// constructed in main and handed to everything that publishes. It owns its
// own locking: Join/Leave/Publish are safe to call from any goroutine, and a
// publish delivers to a stable snapshot of the topic (no join or leave can
// tear a broadcast).
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[Session]bool
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[Session]bool)}
}

func (h *Hub) Join(s Session, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[Session]bool)
	}
	h.topics[topic][s] = true
}

func (h *Hub) Leave(s Session, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.topics[topic], s)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
}

// LeaveAll drops the session from every topic. Called on transport
// disconnect; nothing is buffered for the session, a reconnecting client
// re-fetches current state and resumes from there.
func (h *Hub) LeaveAll(s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, members := range h.topics {
		delete(members, s)
		if len(members) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Publish delivers the event to every current member of the topic. A topic
// with no subscribers is a no-op. Delivery is best effort: a dead session is
// the session's problem, never the publisher's.
func (h *Hub) Publish(topic, event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.topics[topic] {
		if err := s.Send(event, payload); err != nil {
			log.Printf("ws: send %s to %s failed: %v", event, s.ID(), err)
		}
	}
}

// PublishOrder fans an order event out to both interested topics: the order's
// own room and the restaurant feed. A viewer sitting in both rooms receives
// the event once per room, by design.
func (h *Hub) PublishOrder(event string, o *entity.Order) {
	h.Publish(OrderTopic(o.ID), event, o)
	h.Publish(RestaurantTopic(o.RestaurantID), event, o)
}

// PublishOrderDeleted notifies both topics that the order is gone so viewers
// evict local state. Payload carries only the ids needed for routing.
func (h *Hub) PublishOrderDeleted(orderID, restaurantID uint) {
	payload := map[string]any{"id": orderID, "ownerId": restaurantID}
	h.Publish(OrderTopic(orderID), EventOrderDeleted, payload)
	h.Publish(RestaurantTopic(restaurantID), EventOrderDeleted, payload)
}

// PublishWaiterAlert sends a table's call-waiter ping to the restaurant feed.
// Not tied to an order.
func (h *Hub) PublishWaiterAlert(restaurantID uint, tableNumber, message string) {
	h.Publish(RestaurantTopic(restaurantID), EventWaiterAlert, map[string]any{
		"tableNumber": tableNumber,
		"message":     message,
	})
}
