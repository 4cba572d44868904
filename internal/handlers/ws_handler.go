package handlers

import (
	"log"
	"net/http"

	"repair-backend/internal/ws"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard frontend may be served from another origin in dev
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct{}

func NewWSHandler() *WSHandler {
	return &WSHandler{}
}

// DashboardEvents upgrades the connection and keeps it registered until
// the client goes away. Clients only listen; inbound messages are drained
// to detect disconnects.
func (h *WSHandler) DashboardEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	ws.RegisterClient(conn)
	defer ws.UnregisterClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
