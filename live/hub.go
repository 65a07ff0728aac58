// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/taskpoll/models"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16
)

// Event names sent to clients.
const (
	EventResults = "results"
	EventDeleted = "deleted"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin checks are left to CORS configuration at the proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to subscribers. Revision increases with
// every results message a client receives.
type Message struct {
	Event    string             `json:"event"`
	Revision uint64             `json:"revision,omitempty"`
	Data     *models.PollResult `json:"data,omitempty"`
}

// SnapshotFunc reads the current results of a poll and the revision they
// were taken at. ok is false once the poll no longer exists.
type SnapshotFunc func() (res models.PollResult, revision uint64, ok bool)

// Hub fans poll result updates out to websocket subscribers, grouped by
// poll id.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	rev  uint64 // last revision queued, guarded by Hub.mu
}

func New() *Hub {
	return &Hub{clients: make(map[int]map[*client]struct{})}
}

// Run blocks until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// Serve upgrades the connection, sends the current results right away and
// then every newer update published for pollID. The snapshot is read while
// the client is registered, so a delete racing the upgrade is never missed.
// It blocks until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, pollID int, snapshot SnapshotFunc) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		slog.Debug("live: upgrade failed", "poll_id", pollID, "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}

	h.mu.Lock()
	res, rev, ok := snapshot()
	if ok {
		if data, err := encode(EventResults, rev, &res); err == nil {
			c.send <- data
		}
		c.rev = rev
		h.register(pollID, c)
	}
	h.mu.Unlock()

	if !ok {
		// The poll was deleted before the client could be registered.
		data, _ := encode(EventDeleted, 0, nil)
		c.send <- data
		close(c.send)
		c.writePump()
		return
	}
	defer h.unregister(pollID, c)

	go c.writePump()
	c.readPump()
}

// Publish sends res to every subscriber of pollID that has not already been
// sent revision or a newer one. Clients whose buffer is full are
// disconnected.
func (h *Hub) Publish(pollID int, revision uint64, res models.PollResult) {
	data, err := encode(EventResults, revision, &res)
	if err != nil {
		slog.Error("live: failed to encode results", "poll_id", pollID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[pollID] {
		if c.rev >= revision {
			continue
		}
		select {
		case c.send <- data:
			c.rev = revision
		default:
			h.remove(pollID, c)
		}
	}
}

// Close tells subscribers of pollID that the poll is gone and disconnects them.
func (h *Hub) Close(pollID int) {
	data, _ := encode(EventDeleted, 0, nil)

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[pollID] {
		select {
		case c.send <- data:
		default:
		}
		close(c.send)
	}
	delete(h.clients, pollID)
}

// Count returns the number of subscribers of pollID.
func (h *Hub) Count(pollID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[pollID])
}

// register adds c as a subscriber of pollID. h.mu must be held.
func (h *Hub) register(pollID int, c *client) {
	set, ok := h.clients[pollID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[pollID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(pollID int, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(pollID, c)
}

// remove drops c and closes its send channel if it is still subscribed.
// h.mu must be held.
func (h *Hub) remove(pollID int, c *client) {
	set := h.clients[pollID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, pollID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for pollID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, pollID)
	}
}

func encode(event string, revision uint64, res *models.PollResult) ([]byte, error) {
	return json.Marshal(Message{Event: event, Revision: revision, Data: res})
}

// writePump forwards queued messages and sends pings. When send is closed it
// writes a close frame and shuts the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes control frames and detects disconnects.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
