package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var ErrHubStopped = errors.New("websocket hub stopped")

// Conn is the part of a websocket connection the hub writes to
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Subscription ties a connection to the device whose layout events it receives
type Subscription struct {
	DeviceID string
	Conn     Conn
}

// Message is a payload for every connection of one device
type Message struct {
	DeviceID string
	Payload  []byte
}

type Hub struct {
	clients    map[string]map[Conn]bool
	Register   chan Subscription
	Unregister chan Subscription
	Broadcast  chan Message
	done       chan struct{}
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[Conn]bool),
		Register:   make(chan Subscription),
		Unregister: make(chan Subscription),
		Broadcast:  make(chan Message),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes every connection
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.Register:
			h.mutex.Lock()
			if h.clients[sub.DeviceID] == nil {
				h.clients[sub.DeviceID] = make(map[Conn]bool)
			}
			h.clients[sub.DeviceID][sub.Conn] = true
			h.mutex.Unlock()
			slog.Debug("ws client connected", "device_id", sub.DeviceID)

		case sub := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[sub.DeviceID][sub.Conn]; ok {
				h.remove(sub.DeviceID, sub.Conn)
			}
			h.mutex.Unlock()

		case msg := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.clients[msg.DeviceID] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
					h.remove(msg.DeviceID, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// remove closes conn and forgets it; the caller holds the mutex
func (h *Hub) remove(deviceID string, conn Conn) {
	_ = conn.Close()
	delete(h.clients[deviceID], conn)
	if len(h.clients[deviceID]) == 0 {
		delete(h.clients, deviceID)
	}
}

func (h *Hub) shutdown() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for deviceID, conns := range h.clients {
		for conn := range conns {
			h.remove(deviceID, conn)
		}
	}
	close(h.done)
}

// Subscribe registers sub with the running hub. After the hub stops the
// connection is closed and ErrHubStopped returned.
func (h *Hub) Subscribe(sub Subscription) error {
	select {
	case h.Register <- sub:
		return nil
	case <-h.done:
		_ = sub.Conn.Close()
		return ErrHubStopped
	}
}

// Unsubscribe drops sub; it never blocks once the hub has stopped
func (h *Hub) Unsubscribe(sub Subscription) {
	select {
	case h.Unregister <- sub:
	case <-h.done:
	}
}

// Publish sends event as JSON to every connection of deviceID
func (h *Hub) Publish(deviceID string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	select {
	case h.Broadcast <- Message{DeviceID: deviceID, Payload: payload}:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Clients returns the number of connections open for deviceID
func (h *Hub) Clients(deviceID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[deviceID])
}
