package usecase

import (
	"context"
	"time"

	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

// The store interfaces are what the usecases actually need from the
// repository layer; tests substitute mocks for them.

type ChatStore interface {
	FindByID(ctx context.Context, id string) (*entity.Chat, error)
	FindForJobPair(ctx context.Context, clientID, jobSeekerID, jobID string) (*entity.Chat, error)
	// CreateWithParticipants reports whether this call created the chat; a
	// false return means a concurrent create won and chat now holds its row.
	CreateWithParticipants(ctx context.Context, chat *entity.Chat, participants []entity.Participant) (bool, error)
	FindChatsForUser(ctx context.Context, userID string, role enum.Role) ([]entity.Chat, error)
	FindParticipants(ctx context.Context, chatID string) ([]entity.Participant, error)
	FindParticipant(ctx context.Context, chatID, userID string) (*entity.Participant, error)
	UpdateStatus(ctx context.Context, chatID string, status enum.ChatStatus) error
	TouchLastMessage(ctx context.Context, chatID string, at time.Time) error
	CasOffer(ctx context.Context, chatID string, amount *float64, expectFrom []enum.OfferStatus, to enum.OfferStatus) (*entity.Chat, error)
	SoftDeleteSide(ctx context.Context, chatID, userID string, role enum.Role) error
}

type MessageStore interface {
	Create(ctx context.Context, message *entity.Message) error
	FindByID(ctx context.Context, id string) (*entity.Message, error)
	ListSince(ctx context.Context, chatID, cursor string, limit int) ([]entity.Message, error)
	LatestInChat(ctx context.Context, chatID string) (*entity.Message, error)
	SetDeletionFlags(ctx context.Context, messageID string, bySender, byReceiver *bool) error
	CreateUnread(ctx context.Context, messageID string, participantIDs []string) error
	MarkChatSeen(ctx context.Context, chatID, participantID, excludeSenderID string, at time.Time) (int64, error)
	MarkRead(ctx context.Context, chatID string, messageIDs []string, participantID, readerUserID string, at time.Time) error
	FindReadStatuses(ctx context.Context, messageIDs []string) ([]entity.ReadStatus, error)
}

type JobStore interface {
	FindByID(ctx context.Context, id string) (*entity.Job, error)
	IncrementApplicants(ctx context.Context, jobID string) error
	AssignSeeker(ctx context.Context, jobID, jobSeekerID string, offer float64, acceptedAt time.Time) error
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	UpdatePushToken(ctx context.Context, userID, token string) error
}

type NotificationStore interface {
	Save(ctx context.Context, notification *entity.Notification) error
}
