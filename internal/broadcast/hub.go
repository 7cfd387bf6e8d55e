package broadcast

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/190dpa/chatyni-rpg/internal/logging"
)

const writeTimeout = 10 * time.Second

// event is the wire shape of every push message.
type event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// client is one websocket connection. Writes are serialized per
// connection; gorilla connections do not allow concurrent writers.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(e event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(e)
}

// Hub tracks connected players and pushes battle and raid events to
// them. It implements the battle service's Notifier.
type Hub struct {
	mu      sync.Mutex
	clients map[string][]*client

	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string][]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Attach upgrades the request and keeps the connection registered until
// the peer goes away. Blocks for the lifetime of the connection.
func (h *Hub) Attach(username string, w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[username] = append(h.clients[username], c)
	h.mu.Unlock()
	logging.Info("websocket attached", logging.Fields{"player": username})

	// the read loop only exists to detect the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.detach(username, c)
	conn.Close()
	logging.Info("websocket detached", logging.Fields{"player": username})
	return nil
}

func (h *Hub) detach(username string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[username]
	for i, other := range conns {
		if other == c {
			conns = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(conns) == 0 {
		delete(h.clients, username)
	} else {
		h.clients[username] = conns
	}
}

// SendToPlayer pushes an event to every connection of one player.
func (h *Hub) SendToPlayer(username, name string, payload interface{}) {
	h.mu.Lock()
	conns := append([]*client(nil), h.clients[username]...)
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.send(event{Event: name, Payload: payload}); err != nil {
			logging.Error("websocket send failed", err, logging.Fields{"player": username})
		}
	}
}

// Broadcast pushes an event to every connected player.
func (h *Hub) Broadcast(name string, payload interface{}) {
	h.mu.Lock()
	var conns []*client
	for _, list := range h.clients {
		conns = append(conns, list...)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.send(event{Event: name, Payload: payload}); err != nil {
			logging.Error("websocket broadcast failed", err, nil)
		}
	}
}
