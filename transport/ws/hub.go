// Package ws streams world snapshots to websocket clients and takes the
// player input from them. Frames are msgpack encoded binary messages.
package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/akmonengine/blockgame"
	"github.com/akmonengine/blockgame/actor"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Hub fans snapshots out to every connected client.
// The input is the latest one received from any client and stays held until
// the next one arrives.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.RWMutex
	clients map[*SafeWriter]struct{}

	inputMu sync.Mutex
	input   actor.Input
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}

	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*SafeWriter]struct{}),
	}
}

// HandleWS upgrades the request and reads inputs until the client leaves
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("[WS] Upgrade failed: %v", err)
		return
	}

	client := NewSafeWriter(conn)
	h.add(client)
	defer func() {
		h.remove(client)
		client.Close()
	}()

	h.logger.Printf("[WS] Client connected from %s", conn.RemoteAddr())

	for {
		messageType, data, err := client.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("[WS] Read failed: %v", err)
			}
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		var input actor.Input
		if err := msgpack.Unmarshal(data, &input); err != nil {
			h.logger.Printf("[WS] Invalid input frame: %v", err)
			continue
		}
		h.SetInput(input)
	}
}

func (h *Hub) add(client *SafeWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) remove(client *SafeWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Input returns the input held for the next tick
func (h *Hub) Input() actor.Input {
	h.inputMu.Lock()
	defer h.inputMu.Unlock()
	return h.input
}

func (h *Hub) SetInput(input actor.Input) {
	h.inputMu.Lock()
	defer h.inputMu.Unlock()
	h.input = input
}

// Broadcast sends the snapshot to every client. Clients failing the write
// are dropped.
func (h *Hub) Broadcast(snapshot blockgame.Snapshot) error {
	data, err := msgpack.Marshal(&snapshot)
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := make([]*SafeWriter, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.BinaryMessage, data); err != nil {
			h.logger.Printf("[WS] Dropping client: %v", err)
			h.remove(client)
			client.Close()
		}
	}
	return nil
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
