package kds

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xgrece/bodegon/utils"
)

// Record event actions. Events are named "<resource>_<action>", e.g. "order_create".
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Screens a websocket client can subscribe as.
const (
	ScreenKitchen = "kitchen" // order events
	ScreenFloor   = "floor"   // table and client events
	ScreenAll     = "all"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// EventName builds the event name for a resource action.
func EventName(resource, action string) string {
	return resource + "_" + action
}

// Notifier receives every record event.
type Notifier interface {
	Notify(msg Message)
}

// ValidScreen reports whether screen can be subscribed to.
func ValidScreen(screen string) bool {
	switch screen {
	case ScreenKitchen, ScreenFloor, ScreenAll:
		return true
	}
	return false
}

func wants(screen, event string) bool {
	switch screen {
	case ScreenAll:
		return true
	case ScreenKitchen:
		return strings.HasPrefix(event, "order_")
	case ScreenFloor:
		return strings.HasPrefix(event, "table_") || strings.HasPrefix(event, "client_")
	}
	return false
}

const (
	sendBuffer = 32
	writeWait  = 5 * time.Second
)

// screenConn is one subscribed display. Only its writer goroutine writes to conn.
type screenConn struct {
	conn   *websocket.Conn
	screen string
	send   chan []byte
}

// Hub holds the connected display screens. Notify never writes to a socket; it queues
// the message on each screen and drops screens whose queue is full.
type Hub struct {
	clients map[*websocket.Conn]*screenConn
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*screenConn)}
}

// Register adds a connection subscribed as screen and starts its writer.
func (h *Hub) Register(conn *websocket.Conn, screen string) {
	sc := &screenConn{conn: conn, screen: screen, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = sc
	h.mutex.Unlock()

	go h.writePump(sc)
}

// Unregister removes and closes the connection. Unknown connections are ignored.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if sc, ok := h.clients[conn]; ok {
		h.remove(sc)
	}
}

// remove must be called with the hub lock held.
func (h *Hub) remove(sc *screenConn) {
	delete(h.clients, sc.conn)
	close(sc.send)
	sc.conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Notify queues msg for every screen interested in its event.
func (h *Hub) Notify(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("kds: marshal message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	queued := 0
	for _, sc := range h.clients {
		if !wants(sc.screen, msg.Event) {
			continue
		}
		select {
		case sc.send <- data:
			queued++
		default:
			utils.ErrorLogger.WithField("screen", sc.screen).Warn("kds: screen too slow, dropping")
			h.remove(sc)
		}
	}
	utils.InfoLogger.WithField("event", msg.Event).Debugf("kds: queued for %d screens", queued)
}

func (h *Hub) writePump(sc *screenConn) {
	for data := range sc.send {
		sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithError(err).WithField("screen", sc.screen).Warn("kds: send failed")
			h.Unregister(sc.conn)
			// drain until remove closes the channel
			for range sc.send {
			}
			return
		}
	}
}

// Fanout forwards every message to each non-nil notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(msg Message) {
	for _, n := range f {
		if n != nil {
			n.Notify(msg)
		}
	}
}
