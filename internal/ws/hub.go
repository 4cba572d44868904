// Package ws pushes live job events to connected dashboard clients so open
// dashboards refresh without polling.
package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"repair-backend/internal/models"
)

// Event types
const (
	EventJobCreated = "job_created"
	EventJobUpdated = "job_updated"
	EventJobDeleted = "job_deleted"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client.
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]struct{}),
}

// RegisterClient adds a connection to the set
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = struct{}{}
}

// UnregisterClient drops a connection and closes it
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastJobCreated announces a new drop-off
func BroadcastJobCreated(job *models.RepairJob) {
	broadcast(Message{Event: EventJobCreated, Data: job})
}

// BroadcastJobUpdated announces an edit or status change
func BroadcastJobUpdated(job *models.RepairJob) {
	broadcast(Message{Event: EventJobUpdated, Data: job})
}

// BroadcastJobDeleted announces a removal; only the identifier survives
func BroadcastJobDeleted(jobID string) {
	broadcast(Message{Event: EventJobDeleted, Data: map[string]string{"job_id": jobID}})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[WS] Error sending message to client: %v", err)
			continue
		}
	}
}
