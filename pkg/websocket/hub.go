package websocket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"vehicle-rental/pkg/logger"
)

var (
	ErrHubClosed = errors.New("websocket hub closed")
	ErrHubBusy   = errors.New("websocket hub queue full")
)

// Message is the frame pushed to clients. Booking events fill BookingID, VehicleID and Status.
type Message struct {
	Type      string                 `json:"type"`
	BookingID uint64                 `json:"booking_id,omitempty"`
	VehicleID uint64                 `json:"vehicle_id,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type delivery struct {
	room string
	data []byte
}

// Hub tracks connected clients by room. All room bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	rooms      map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{}
	logger     *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
		logger:     log.WithField("component", "websocket_hub"),
	}
}

func UserRoom(userID uint64) string {
	return fmt.Sprintf("user:%d", userID)
}

// Run processes registrations and deliveries until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.removeClient(client)
			}
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case d := <-h.deliver:
			for client := range h.rooms[d.room] {
				h.sendToClient(client, d.data)
			}
		}
	}
}

// SendToUser queues msg for every connection of the user. It never blocks.
func (h *Hub) SendToUser(userID uint64, msg *Message) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}

	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode websocket message: %w", err)
	}

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.deliver <- delivery{room: UserRoom(userID), data: data}:
		return nil
	default:
		return ErrHubBusy
	}
}

func (h *Hub) Register(ctx context.Context, client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) addClient(client *Client) {
	h.clients[client] = struct{}{}

	room := UserRoom(client.UserID)
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}

	h.logger.WithUserID(client.UserID).Debug("Client registered")

	welcome, _ := sonic.Marshal(&Message{
		Type:      "welcome",
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"room": room,
		},
	})
	h.sendToClient(client, welcome)
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	room := UserRoom(client.UserID)
	delete(h.rooms[room], client)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}

	h.logger.WithUserID(client.UserID).Debug("Client unregistered")
}

// sendToClient drops clients whose buffer is full.
func (h *Hub) sendToClient(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.removeClient(client)
	}
}
