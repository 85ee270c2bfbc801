package usecase

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockChatStore struct{ mock.Mock }

func (m *mockChatStore) FindByID(ctx context.Context, id string) (*entity.Chat, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*entity.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatStore) FindForJobPair(ctx context.Context, clientID, jobSeekerID, jobID string) (*entity.Chat, error) {
	args := m.Called(ctx, clientID, jobSeekerID, jobID)
	if c := args.Get(0); c != nil {
		return c.(*entity.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatStore) CreateWithParticipants(ctx context.Context, chat *entity.Chat, participants []entity.Participant) (bool, error) {
	args := m.Called(ctx, chat, participants)
	return args.Bool(0), args.Error(1)
}

func (m *mockChatStore) FindChatsForUser(ctx context.Context, userID string, role enum.Role) ([]entity.Chat, error) {
	args := m.Called(ctx, userID, role)
	if c := args.Get(0); c != nil {
		return c.([]entity.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatStore) FindParticipants(ctx context.Context, chatID string) ([]entity.Participant, error) {
	args := m.Called(ctx, chatID)
	if p := args.Get(0); p != nil {
		return p.([]entity.Participant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatStore) FindParticipant(ctx context.Context, chatID, userID string) (*entity.Participant, error) {
	args := m.Called(ctx, chatID, userID)
	if p := args.Get(0); p != nil {
		return p.(*entity.Participant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatStore) UpdateStatus(ctx context.Context, chatID string, status enum.ChatStatus) error {
	return m.Called(ctx, chatID, status).Error(0)
}

func (m *mockChatStore) TouchLastMessage(ctx context.Context, chatID string, at time.Time) error {
	return m.Called(ctx, chatID, at).Error(0)
}

func (m *mockChatStore) CasOffer(ctx context.Context, chatID string, amount *float64, expectFrom []enum.OfferStatus, to enum.OfferStatus) (*entity.Chat, error) {
	args := m.Called(ctx, chatID, amount, expectFrom, to)
	if c := args.Get(0); c != nil {
		return c.(*entity.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatStore) SoftDeleteSide(ctx context.Context, chatID, userID string, role enum.Role) error {
	return m.Called(ctx, chatID, userID, role).Error(0)
}

type mockMessageStore struct{ mock.Mock }

func (m *mockMessageStore) Create(ctx context.Context, message *entity.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockMessageStore) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	args := m.Called(ctx, id)
	if msg := args.Get(0); msg != nil {
		return msg.(*entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageStore) ListSince(ctx context.Context, chatID, cursor string, limit int) ([]entity.Message, error) {
	args := m.Called(ctx, chatID, cursor, limit)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageStore) LatestInChat(ctx context.Context, chatID string) (*entity.Message, error) {
	args := m.Called(ctx, chatID)
	if msg := args.Get(0); msg != nil {
		return msg.(*entity.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageStore) SetDeletionFlags(ctx context.Context, messageID string, bySender, byReceiver *bool) error {
	return m.Called(ctx, messageID, bySender, byReceiver).Error(0)
}

func (m *mockMessageStore) CreateUnread(ctx context.Context, messageID string, participantIDs []string) error {
	return m.Called(ctx, messageID, participantIDs).Error(0)
}

func (m *mockMessageStore) MarkChatSeen(ctx context.Context, chatID, participantID, excludeSenderID string, at time.Time) (int64, error) {
	args := m.Called(ctx, chatID, participantID, excludeSenderID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageStore) MarkRead(ctx context.Context, chatID string, messageIDs []string, participantID, readerUserID string, at time.Time) error {
	return m.Called(ctx, chatID, messageIDs, participantID, readerUserID, at).Error(0)
}

func (m *mockMessageStore) FindReadStatuses(ctx context.Context, messageIDs []string) ([]entity.ReadStatus, error) {
	args := m.Called(ctx, messageIDs)
	if s := args.Get(0); s != nil {
		return s.([]entity.ReadStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJobStore struct{ mock.Mock }

func (m *mockJobStore) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	args := m.Called(ctx, id)
	if j := args.Get(0); j != nil {
		return j.(*entity.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobStore) IncrementApplicants(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

func (m *mockJobStore) AssignSeeker(ctx context.Context, jobID, jobSeekerID string, offer float64, acceptedAt time.Time) error {
	return m.Called(ctx, jobID, jobSeekerID, offer, acceptedAt).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdatePushToken(ctx context.Context, userID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Save(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, notification *entity.Notification, recipientUserID string) error {
	return m.Called(ctx, notification, recipientUserID).Error(0)
}

type mockPusher struct{ mock.Mock }

func (m *mockPusher) Push(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}

type mockBlobStore struct{ mock.Mock }

func (m *mockBlobStore) Write(ctx context.Context, chatID, name string, data []byte) (string, error) {
	args := m.Called(ctx, chatID, name, data)
	return args.String(0), args.Error(1)
}
