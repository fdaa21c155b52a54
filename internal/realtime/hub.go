package realtime

import "sync"

// Client is one websocket connection tracked by the hub. Room is the name of
// the room the client currently listens to; a client is in at most one room.
type Client struct {
	Room string
	Send chan []byte
}

// Message carries a payload addressed to all subscribers of a room.
type Message struct {
	Room string
	Data []byte
}

// Hub relays messages between clients grouped by room. All map mutation
// happens on the Run goroutine; broadcasts only read under the RWMutex.
// Delivery is fire-and-forget: slow clients get dropped, nothing is stored.
type Hub struct {
	rooms map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates an empty hub. Call Run in a goroutine before registering.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register, unregister and broadcast events until the process
// exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.Room] == nil {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.Room]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.rooms[msg.Room]
			targets := make([]*Client, 0, len(clients))
			for client := range clients {
				targets = append(targets, client)
			}
			h.mu.RUnlock()

			for _, client := range targets {
				select {
				case client.Send <- msg.Data:
				default:
					// Slow consumer: drop it inline. Sending to h.unregister
					// here would deadlock, since this goroutine is the only
					// receiver of that channel.
					h.mu.Lock()
					if room, ok := h.rooms[client.Room]; ok {
						if _, ok := room[client]; ok {
							delete(room, client)
							close(client.Send)
							if len(room) == 0 {
								delete(h.rooms, client.Room)
							}
						}
					}
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastToRoom sends data to every client currently in the room.
func (h *Hub) BroadcastToRoom(room string, data []byte) {
	h.broadcast <- &Message{Room: room, Data: data}
}

// Register adds a client to its room.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
