package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventJoinRoom       = "joinRoom"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the frontend origin; auth happens at the
	// application level, the relay itself carries no protected data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientEvent is the envelope clients send over the socket.
type ClientEvent struct {
	Event string          `json:"event"`
	Room  string          `json:"room"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ServerEvent is the envelope relayed back to room subscribers.
type ServerEvent struct {
	Event string          `json:"event"`
	Room  string          `json:"room"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ServeWS upgrades the request and runs the read loop. A connection joins one
// room at a time; sendMessage events are rebroadcast to the current room's
// subscribers as receiveMessage.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var writeMu sync.Mutex
		var client *Client

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var event ClientEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				continue
			}

			switch event.Event {
			case EventJoinRoom:
				if event.Room == "" {
					continue
				}
				if client != nil {
					hub.Unregister(client)
				}
				client = &Client{Room: event.Room, Send: make(chan []byte, 64)}
				hub.Register(client)
				go writePump(conn, &writeMu, client)

			case EventSendMessage:
				room := event.Room
				if room == "" && client != nil {
					room = client.Room
				}
				if room == "" {
					continue
				}
				out, err := json.Marshal(ServerEvent{
					Event: EventReceiveMessage,
					Room:  room,
					Data:  event.Data,
				})
				if err != nil {
					continue
				}
				hub.BroadcastToRoom(room, out)
			}
		}

		if client != nil {
			hub.Unregister(client)
		}
	}
}

// writePump drains the client's send channel onto the connection until the
// hub closes the channel.
func writePump(conn *websocket.Conn, writeMu *sync.Mutex, client *Client) {
	for data := range client.Send {
		writeMu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, data)
		writeMu.Unlock()
		if err != nil {
			return
		}
	}
}
