package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many events may queue for one client before it is dropped.
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	addr string
	send chan []byte
}

// Hub menampung semua client websocket yang memantau booking.
// Setiap client punya goroutine writer sendiri, jadi Broadcast tidak pernah menunggu socket.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// RegisterClient -> menambahkan connection ke hub dan menjalankan writer-nya
func (h *Hub) RegisterClient(conn *websocket.Conn, addr string) {
	c := &client{conn: conn, addr: addr, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	total := len(h.clients)
	h.mutex.Unlock()

	go h.writePump(c)
	utils.InfoLogger.Printf("Live client connected: %s (%d total)", addr, total)
}

// UnregisterClient -> melepaskan connection
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(conn)
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Notify broadcasts a committed booking event to every client.
func (h *Hub) Notify(_ context.Context, event models.BookingEvent) error {
	return h.Broadcast(Message{Event: event.Type, Data: event.Booking})
}

// Broadcast queues msg for all clients. A client whose queue is full is
// too slow to keep up and gets dropped.
func (h *Hub) Broadcast(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.Printf("Live client %s is not keeping up, dropping it before %s", c.addr, msg.Event)
			h.removeLocked(conn)
		}
	}
	return nil
}

// writePump writes queued events to one client until its queue is closed
// or a write fails.
func (h *Hub) writePump(c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending event to %s: %v", c.addr, err)
			h.UnregisterClient(c.conn)
			return
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		h.removeLocked(conn)
	}
}

func (h *Hub) removeLocked(conn *websocket.Conn) {
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
		conn.Close()
		utils.InfoLogger.Printf("Live client disconnected: %s", c.addr)
	}
}
