// Package hub keeps the process-local real-time state: which users hold a
// live connection, which connections subscribe to which chat rooms, and the
// transient call relay. Nothing here survives a restart; durable catch-up is
// the message log's job.
package hub

import (
	"sync"

	"github.com/sirupsen/logrus"

	"gigwork-chat-app/dto"
)

// Broker fans events out to other instances of this service. The hub works
// without one; then delivery is limited to local connections.
type Broker interface {
	PublishRoom(chatID, except string, event dto.Envelope) error
	PublishGlobal(event dto.Envelope) error
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]Client          // userID -> live connection
	rooms   map[string]map[string]bool // chatID -> subscribed userIDs

	log     *logrus.Logger
	broker  Broker
	onEvict func(userID string)
}

func New(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[string]Client),
		rooms:   make(map[string]map[string]bool),
		log:     log,
	}
}

// SetBroker attaches a cross-process broker. Must be called before the hub
// starts serving connections.
func (h *Hub) SetBroker(b Broker) { h.broker = b }

// OnEvict registers a callback fired when the hub drops a stalled connection,
// so callers can run the same cleanup as on a normal disconnect.
func (h *Hub) OnEvict(fn func(userID string)) { h.onEvict = fn }

// Register records a user's live connection. A duplicate registration for the
// same user wins over the previous one; the prior handle is closed and falls
// out of every room (last-registration-wins, mirroring the source).
func (h *Hub) Register(userID string, client Client) {
	var prior Client
	h.mu.Lock()
	if existing, ok := h.clients[userID]; ok && existing != client {
		prior = existing
	}
	h.clients[userID] = client
	h.mu.Unlock()

	if prior != nil {
		prior.Close()
		h.log.Warnf("duplicate registration for user %s, previous connection evicted", userID)
	}
}

// Unregister removes the user's connection, but only if it is still the one
// given; a newer registration must not be torn down by a stale disconnect.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	if existing, ok := h.clients[userID]; ok && existing == client {
		delete(h.clients, userID)
		for chatID, members := range h.rooms {
			delete(members, userID)
			if len(members) == 0 {
				delete(h.rooms, chatID)
			}
		}
	}
	h.mu.Unlock()
}

func (h *Hub) Lookup(userID string) (Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[userID]
	return client, ok
}

func (h *Hub) OnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// Join subscribes the user's connection to a chat's multicast group.
func (h *Hub) Join(chatID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[chatID] == nil {
		h.rooms[chatID] = make(map[string]bool)
	}
	h.rooms[chatID][userID] = true
}

func (h *Hub) Leave(chatID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[chatID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

func (h *Hub) RoomMembers(chatID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := make([]string, 0, len(h.rooms[chatID]))
	for id := range h.rooms[chatID] {
		members = append(members, id)
	}
	return members
}

// EmitRoom multicasts to every connection currently subscribed to the chat's
// room, here and (through the broker) on sibling instances. Members joining
// after the fan-out rely on the durable log for catch-up.
func (h *Hub) EmitRoom(chatID string, event dto.Envelope) {
	h.EmitRoomExcept(chatID, "", event)
}

// EmitRoomExcept is EmitRoom minus one member, for events the acting user
// should not receive back.
func (h *Hub) EmitRoomExcept(chatID, except string, event dto.Envelope) {
	h.deliverRoom(chatID, except, event)
	if h.broker != nil {
		if err := h.broker.PublishRoom(chatID, except, event); err != nil {
			h.log.WithError(err).Warn("broker publish failed, delivery is local only")
		}
	}
}

// EmitGlobal broadcasts to every live connection, not just one room.
func (h *Hub) EmitGlobal(event dto.Envelope) {
	h.deliverGlobal(event)
	if h.broker != nil {
		if err := h.broker.PublishGlobal(event); err != nil {
			h.log.WithError(err).Warn("broker publish failed, delivery is local only")
		}
	}
}

// EmitUser delivers to a single user's connection. Returns false when the
// user has no live connection on this instance.
func (h *Hub) EmitUser(userID string, event dto.Envelope) bool {
	client, ok := h.Lookup(userID)
	if !ok {
		return false
	}
	h.sendOrEvict(userID, client, event)
	return true
}

func (h *Hub) deliverRoom(chatID, except string, event dto.Envelope) {
	h.mu.RLock()
	targets := make(map[string]Client)
	for userID := range h.rooms[chatID] {
		if userID == except {
			continue
		}
		if client, ok := h.clients[userID]; ok {
			targets[userID] = client
		}
	}
	h.mu.RUnlock()

	for userID, client := range targets {
		h.sendOrEvict(userID, client, event)
	}
}

func (h *Hub) deliverGlobal(event dto.Envelope) {
	h.mu.RLock()
	targets := make(map[string]Client, len(h.clients))
	for userID, client := range h.clients {
		targets[userID] = client
	}
	h.mu.RUnlock()

	for userID, client := range targets {
		h.sendOrEvict(userID, client, event)
	}
}

func (h *Hub) sendOrEvict(userID string, client Client, event dto.Envelope) {
	if err := client.Send(event); err != nil {
		h.log.Warnf("dropping stalled connection for user %s: %v", userID, err)
		client.Close()
		h.Unregister(userID, client)
		if h.onEvict != nil {
			h.onEvict(userID)
		}
	}
}
