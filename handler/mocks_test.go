package handler

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
	"gigwork-chat-app/usecase"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memClient records what the gateway sends on one connection.
type memClient struct {
	mu     sync.Mutex
	userID string
	events []dto.Envelope
}

func (c *memClient) UserID() string { return c.userID }

func (c *memClient) Send(event dto.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *memClient) Close() {}

func (c *memClient) eventNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.events))
	for _, e := range c.events {
		names = append(names, e.Event)
	}
	return names
}

func (c *memClient) lastEvent() (dto.Envelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.events) == 0 {
		return dto.Envelope{}, false
	}
	return c.events[len(c.events)-1], true
}

type mockChatUsecase struct{ mock.Mock }

func (m *mockChatUsecase) EnsureChat(ctx context.Context, jobSeekerID string, payload req.CreateChatRequest) (*res.ChatCreated, bool, error) {
	args := m.Called(ctx, jobSeekerID, payload)
	if c := args.Get(0); c != nil {
		return c.(*res.ChatCreated), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockChatUsecase) GetUserChats(ctx context.Context, userID string, role enum.Role) ([]res.ChatSummary, error) {
	args := m.Called(ctx, userID, role)
	if s := args.Get(0); s != nil {
		return s.([]res.ChatSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatUsecase) VerifyMembership(ctx context.Context, chatID, userID string) error {
	return m.Called(ctx, chatID, userID).Error(0)
}

func (m *mockChatUsecase) GetChatStatus(ctx context.Context, chatID, userID string) (*res.ChatStatusView, error) {
	args := m.Called(ctx, chatID, userID)
	if s := args.Get(0); s != nil {
		return s.(*res.ChatStatusView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatUsecase) ApproveChat(ctx context.Context, chatID, userID string) error {
	return m.Called(ctx, chatID, userID).Error(0)
}

func (m *mockChatUsecase) RejectChat(ctx context.Context, chatID, userID string) error {
	return m.Called(ctx, chatID, userID).Error(0)
}

func (m *mockChatUsecase) DeleteChat(ctx context.Context, userID string, payload req.DeleteChatRequest) error {
	return m.Called(ctx, userID, payload).Error(0)
}

type mockMessageUsecase struct{ mock.Mock }

func (m *mockMessageUsecase) SendMessage(ctx context.Context, senderID string, payload req.SendMessageRequest) (*usecase.SendResult, error) {
	args := m.Called(ctx, senderID, payload)
	if r := args.Get(0); r != nil {
		return r.(*usecase.SendResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageUsecase) SendMedia(ctx context.Context, senderID, chatID, name string, data []byte, kind enum.MessageType) (*usecase.SendResult, error) {
	args := m.Called(ctx, senderID, chatID, name, data, kind)
	if r := args.Get(0); r != nil {
		return r.(*usecase.SendResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageUsecase) ListMessages(ctx context.Context, userID string, payload req.FetchMessagesRequest) (*res.MessagesPage, error) {
	args := m.Called(ctx, userID, payload)
	if p := args.Get(0); p != nil {
		return p.(*res.MessagesPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageUsecase) MarkSeen(ctx context.Context, userID string, payload req.MarkSeenRequest) (*usecase.SeenResult, error) {
	args := m.Called(ctx, userID, payload)
	if r := args.Get(0); r != nil {
		return r.(*usecase.SeenResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageUsecase) MarkRead(ctx context.Context, userID string, payload req.MarkReadRequest) error {
	return m.Called(ctx, userID, payload).Error(0)
}

func (m *mockMessageUsecase) DeleteMessage(ctx context.Context, userID string, payload req.DeleteMessageRequest) (*entity.Message, error) {
	args := m.Called(ctx, userID, payload)
	if msg := args.Get(0); msg != nil {
		return msg.(*entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}
