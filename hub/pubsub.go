package hub

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gigwork-chat-app/dto"
)

const broadcastChannel = "chat:broadcast"

type frameScope string

const (
	scopeRoom   frameScope = "room"
	scopeGlobal frameScope = "global"
)

// frame is the Redis wire format: the envelope plus routing metadata. Origin
// lets an instance skip its own publications, since local delivery already
// happened synchronously.
type frame struct {
	Origin string       `json:"origin"`
	Scope  frameScope   `json:"scope"`
	ChatID string       `json:"chatId,omitempty"`
	Except string       `json:"except,omitempty"`
	Event  dto.Envelope `json:"event"`
}

// RedisBroker bridges room and global fan-out across instances over a single
// pub/sub channel.
type RedisBroker struct {
	rdb        *redis.Client
	hub        *Hub
	log        *logrus.Logger
	instanceID string
}

func NewRedisBroker(rdb *redis.Client, h *Hub, log *logrus.Logger) *RedisBroker {
	b := &RedisBroker{
		rdb:        rdb,
		hub:        h,
		log:        log,
		instanceID: uuid.New().String(),
	}
	h.SetBroker(b)
	return b
}

func (b *RedisBroker) PublishRoom(chatID, except string, event dto.Envelope) error {
	return b.publish(frame{Origin: b.instanceID, Scope: scopeRoom, ChatID: chatID, Except: except, Event: event})
}

func (b *RedisBroker) PublishGlobal(event dto.Envelope) error {
	return b.publish(frame{Origin: b.instanceID, Scope: scopeGlobal, Event: event})
}

func (b *RedisBroker) publish(f frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return b.rdb.Publish(context.Background(), broadcastChannel, payload).Err()
}

// Run subscribes to the broadcast channel and feeds remote events into the
// local hub until ctx is cancelled.
func (b *RedisBroker) Run(ctx context.Context) {
	pubsub := b.rdb.Subscribe(ctx, broadcastChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var f frame
			if err := json.Unmarshal([]byte(msg.Payload), &f); err != nil {
				b.log.WithError(err).Warn("unreadable broker frame, skipping")
				continue
			}
			if f.Origin == b.instanceID {
				continue
			}
			switch f.Scope {
			case scopeRoom:
				b.hub.deliverRoom(f.ChatID, f.Except, f.Event)
			case scopeGlobal:
				b.hub.deliverGlobal(f.Event)
			}
		}
	}
}
