package usecase

import (
	"context"

	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/enum"
)

type ChatUsecase interface {
	// EnsureChat returns the chat for the (client, job seeker, job) triple,
	// creating it on first contact. The bool reports whether a new chat was
	// created.
	EnsureChat(ctx context.Context, jobSeekerID string, payload req.CreateChatRequest) (*res.ChatCreated, bool, error)
	GetUserChats(ctx context.Context, userID string, role enum.Role) ([]res.ChatSummary, error)
	// VerifyMembership fails with an authorization error when the user holds
	// no participant row in the chat.
	VerifyMembership(ctx context.Context, chatID, userID string) error
	GetChatStatus(ctx context.Context, chatID, userID string) (*res.ChatStatusView, error)
	ApproveChat(ctx context.Context, chatID, userID string) error
	RejectChat(ctx context.Context, chatID, userID string) error
	DeleteChat(ctx context.Context, userID string, payload req.DeleteChatRequest) error
}
