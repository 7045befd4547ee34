package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fourrow/game-server/internal/domain"
	"github.com/fourrow/game-server/internal/service/game"
	"github.com/fourrow/game-server/pkg/uid"
)

// Handler upgrades connections and dispatches inbound events to the
// session controller.
type Handler struct {
	ConnManager *ConnectionManager
	Controller  *game.Controller
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, ctrl *game.Controller, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		Controller:  ctrl,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection.
func (h *Handler) handleConnection(conn *websocket.Conn) {
	connID := uid.NewConnID()
	h.ConnManager.Add(connID, conn)

	// detect stale connections
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	// keep-alive pinger
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		log.Printf("[WS] Connection %s closed", connID)
		h.Controller.HandleDisconnect(connID)
		h.ConnManager.Remove(connID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Connection %s dropped unexpectedly: %v", connID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message on %s: %v", connID, err)
			continue
		}

		h.processMessage(connID, msg)
	}
}

// processMessage routes specific actions.
func (h *Handler) processMessage(connID string, msg domain.ClientMessage) {
	switch msg.Type {
	case "join":
		if msg.Username == "" {
			h.ConnManager.Send(connID, domain.ServerMessage{Type: "error", Message: "username required"})
			return
		}
		h.Controller.Join(connID, msg.Username)

	case "make_move":
		h.Controller.HandleMove(connID, msg.GameID, msg.Column)

	default:
		log.Printf("[WS] Unknown message type %q on %s", msg.Type, connID)
	}
}
