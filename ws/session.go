package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/utils"
)

// Client -> broker control events.
const (
	eventJoinOrderRoom       = "joinOrderRoom"
	eventLeaveOrderRoom      = "leaveOrderRoom"
	eventJoinRestaurantRoom  = "joinRestaurantRoom"
	eventLeaveRestaurantRoom = "leaveRestaurantRoom"
)

// envelope frames every message in both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// wsSession adapts one websocket connection to the hub's Session interface.
// gorilla/websocket allows a single concurrent writer, hence the write lock.
type wsSession struct {
	id   string
	conn *websocket.Conn
	wmu  sync.Mutex

	// zero for unauthenticated guests
	userID       uint
	role         entity.StaffRole
	restaurantID uint
}

func (s *wsSession) ID() string { return s.id }

func (s *wsSession) Send(event string, payload any) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.conn.WriteJSON(outEnvelope{Event: event, Data: payload})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// HandleWebSocket upgrades the request and runs the session's read loop.
// Guests connect without a token and may only join order rooms; staff tokens
// (parsed by the ws auth middleware) unlock the restaurant feed.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sess := &wsSession{
		id:     uuid.NewString(),
		conn:   conn,
		userID: utils.CurrentUserID(c),
		role:   entity.StaffRole(utils.CurrentRole(c)),
	}
	if v, ok := c.Get("restaurantId"); ok {
		if id, ok := v.(uint); ok {
			sess.restaurantID = id
		}
	}

	go h.readLoop(sess)
}

func (h *Handler) readLoop(sess *wsSession) {
	// disconnect tears down every membership; no events are replayed to a
	// reconnecting session
	defer func() {
		h.hub.LeaveAll(sess)
		sess.conn.Close()
	}()

	for {
		_, raw, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("ws: invalid frame from %s: %v", sess.id, err)
			continue
		}
		h.dispatch(sess, env)
	}
}

func (h *Handler) dispatch(sess *wsSession, env envelope) {
	switch env.Event {
	case eventJoinOrderRoom, eventLeaveOrderRoom:
		var data struct {
			OrderID uint `json:"orderId"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil || data.OrderID == 0 {
			return
		}
		if env.Event == eventJoinOrderRoom {
			h.hub.Join(sess, OrderTopic(data.OrderID))
		} else {
			h.hub.Leave(sess, OrderTopic(data.OrderID))
		}

	case eventJoinRestaurantRoom, eventLeaveRestaurantRoom:
		var data struct {
			OwnerID uint `json:"ownerId"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil || data.OwnerID == 0 {
			return
		}
		// staff only, and only for their own restaurant
		if sess.userID == 0 || sess.restaurantID != data.OwnerID {
			return
		}
		room := RestaurantTopic(data.OwnerID)
		if env.Event == eventJoinRestaurantRoom {
			h.hub.Join(sess, room)
			if err := sess.Send(EventRoomJoined, map[string]any{
				"room":   room,
				"userId": sess.userID,
			}); err != nil {
				log.Printf("ws: roomJoined ack to %s failed: %v", sess.id, err)
			}
		} else {
			h.hub.Leave(sess, room)
		}
	}
}
