// Package websocket implements a WebSocket Hub for broadcasting live score updates.
// WebSockets are persistent two-way connections between the server and clients, so
// spectators watching a live game see score changes the moment an operator enters
// them, without polling the API repeatedly.
package websocket

import "sync"

// Client represents a single connected WebSocket client.
// Each spectator watching a live game has one Client instance on the server.
type Client struct {
	GameID string      // Which game this client is watching — routes messages to the right audience
	Send   chan []byte // Buffered channel of outgoing messages; the Hub writes here, the socket drains it
}

// Message is a unit of data to broadcast to all clients watching a specific game.
type Message struct {
	GameID string
	Data   []byte // Raw bytes to send (typically a JSON-encoded score payload)
}

// Hub manages all active WebSocket connections, grouped by game ID.
// It runs in its own goroutine and processes registration, unregistration, and
// broadcast events through channels — this keeps all map mutation on a single
// goroutine, which avoids data races (concurrent map writes panic in Go).
type Hub struct {
	// clients is a nested map: gameID -> set of Client pointers.
	// A map[*Client]bool as a "set" is a common Go idiom since Go has no set type.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu protects the clients map for the read done during broadcast while the
	// main loop mutates it. A RWMutex allows many readers or one writer.
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub. The broadcast channel has a buffer of 256
// so writers don't block immediately if the Hub goroutine is briefly busy; register
// and unregister stay unbuffered because those must complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. It must be called in a goroutine ("go hub.Run()").
// It blocks forever, processing one event at a time via select.
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.GameID] == nil {
				h.clients[client.GameID] = make(map[*Client]bool)
			}
			h.clients[client.GameID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.GameID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					// Closing the channel signals the socket writer goroutine to stop.
					close(client.Send)
					// Drop the game's map entry once it has no watchers left.
					if len(clients) == 0 {
						delete(h.clients, client.GameID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[msg.GameID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.Send <- msg.Data:
				// If the buffer is full the client is too slow — drop and disconnect
				// it rather than blocking the broadcast loop for everyone else.
				default:
					h.unregister <- client
				}
			}
		}
	}
}

// BroadcastToGame sends data to all clients currently watching the given game.
// This is the public API the score-update handler calls.
func (h *Hub) BroadcastToGame(gameID string, data []byte) {
	h.broadcast <- &Message{GameID: gameID, Data: data}
}

// Register adds a client so it starts receiving broadcasts for its game.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
