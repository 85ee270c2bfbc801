package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
	"gigwork-chat-app/storage"
)

type messageUsecase struct {
	chats    ChatStore
	messages MessageStore
	blobs    storage.BlobStore
	log      *logrus.Logger
}

func NewMessageUsecase(chats ChatStore, messages MessageStore, blobs storage.BlobStore, log *logrus.Logger) MessageUsecase {
	return &messageUsecase{chats: chats, messages: messages, blobs: blobs, log: log}
}

func (uc *messageUsecase) SendMessage(ctx context.Context, senderID string, payload req.SendMessageRequest) (*SendResult, error) {
	kind := payload.MessageType
	if kind == "" {
		kind = enum.MessageTypeText
	}
	return uc.store(ctx, senderID, payload.ChatID, payload.Content, kind)
}

func (uc *messageUsecase) SendMedia(ctx context.Context, senderID, chatID, name string, data []byte, kind enum.MessageType) (*SendResult, error) {
	if _, err := uc.chats.FindParticipant(ctx, chatID, senderID); err != nil {
		return nil, err
	}
	location, err := uc.blobs.Write(ctx, chatID, name, data)
	if err != nil {
		return nil, err
	}
	return uc.store(ctx, senderID, chatID, location, kind)
}

// store appends the message, seeds one unread marker per recipient and bumps
// the chat's activity timestamp.
func (uc *messageUsecase) store(ctx context.Context, senderID, chatID, content string, kind enum.MessageType) (*SendResult, error) {
	if _, err := uc.chats.FindParticipant(ctx, chatID, senderID); err != nil {
		return nil, err
	}
	participants, err := uc.chats.FindParticipants(ctx, chatID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
		Type:     kind,
	}
	if err := uc.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	var recipientRows []string
	var recipientUsers []string
	for i := range participants {
		p := &participants[i]
		if p.Holds(senderID) {
			continue
		}
		recipientRows = append(recipientRows, p.ID)
		if id := sideUserID(p); id != "" {
			recipientUsers = append(recipientUsers, id)
		}
	}
	if err := uc.messages.CreateUnread(ctx, message.ID, recipientRows); err != nil {
		return nil, err
	}
	if err := uc.chats.TouchLastMessage(ctx, chatID, message.SentAt); err != nil {
		uc.log.WithError(err).WithField("chatId", chatID).Warn("failed to touch chat activity")
	}

	return &SendResult{Message: message, RecipientUserIDs: recipientUsers}, nil
}

func (uc *messageUsecase) ListMessages(ctx context.Context, userID string, payload req.FetchMessagesRequest) (*res.MessagesPage, error) {
	if _, err := uc.chats.FindParticipant(ctx, payload.ChatID, userID); err != nil {
		return nil, err
	}
	messages, err := uc.messages.ListSince(ctx, payload.ChatID, payload.Cursor, payload.Limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(messages))
	for i := range messages {
		ids[i] = messages[i].ID
	}
	// A message counts as seen once every recipient marker is stamped.
	seen := map[string]bool{}
	if len(ids) > 0 {
		statuses, err := uc.messages.FindReadStatuses(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, s := range statuses {
			read := s.ReadAt != nil
			if prev, ok := seen[s.MessageID]; ok {
				seen[s.MessageID] = prev && read
			} else {
				seen[s.MessageID] = read
			}
		}
	}

	views := make([]res.MessageView, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		view := res.MessageView{
			ID:       m.ID,
			ChatID:   m.ChatID,
			SenderID: m.SenderID,
			Content:  m.Content,
			Type:     m.Type,
			SentAt:   m.SentAt,
			IsSeen:   seen[m.ID],
		}
		if !m.VisibleTo(userID) {
			view.Content = deletedMessagePlaceholder
			view.Deleted = true
		}
		views = append(views, view)
	}
	return &res.MessagesPage{ChatID: payload.ChatID, Messages: views}, nil
}

func (uc *messageUsecase) MarkSeen(ctx context.Context, userID string, payload req.MarkSeenRequest) (*SeenResult, error) {
	participant, err := uc.chats.FindParticipant(ctx, payload.ChatID, userID)
	if err != nil {
		return nil, err
	}
	updated, err := uc.messages.MarkChatSeen(ctx, payload.ChatID, participant.ID, userID, time.Now())
	if err != nil {
		return nil, err
	}

	result := &SeenResult{ChatID: payload.ChatID, Updated: updated}
	latest, err := uc.messages.LatestInChat(ctx, payload.ChatID)
	switch {
	case err == nil:
		result.LatestMessageID = latest.ID
	case !apperr.IsNotFound(err):
		return nil, err
	}
	return result, nil
}

func (uc *messageUsecase) MarkRead(ctx context.Context, userID string, payload req.MarkReadRequest) error {
	participant, err := uc.chats.FindParticipant(ctx, payload.ChatID, userID)
	if err != nil {
		return err
	}
	// The store discards IDs outside the chat or authored by the reader, so
	// a sender can never stamp a marker onto their own message.
	return uc.messages.MarkRead(ctx, payload.ChatID, payload.MessageIDs, participant.ID, userID, time.Now())
}

func (uc *messageUsecase) DeleteMessage(ctx context.Context, userID string, payload req.DeleteMessageRequest) (*entity.Message, error) {
	message, err := uc.messages.FindByID(ctx, payload.MessageID)
	if err != nil {
		return nil, err
	}
	if message.ChatID != payload.ChatID {
		return nil, apperr.InvalidStatef("message %s does not belong to chat %s", payload.MessageID, payload.ChatID)
	}
	if _, err := uc.chats.FindParticipant(ctx, payload.ChatID, userID); err != nil {
		return nil, err
	}

	truthy := true
	switch enum.DeleteScope(payload.DeletionType) {
	case enum.DeleteScopeEveryone:
		message.DeletedBySender = true
		message.DeletedByReceiver = true
		if err := uc.messages.SetDeletionFlags(ctx, message.ID, &truthy, &truthy); err != nil {
			return nil, err
		}
	default:
		if message.SenderID == userID {
			message.DeletedBySender = true
			if err := uc.messages.SetDeletionFlags(ctx, message.ID, &truthy, nil); err != nil {
				return nil, err
			}
		} else {
			message.DeletedByReceiver = true
			if err := uc.messages.SetDeletionFlags(ctx, message.ID, nil, &truthy); err != nil {
				return nil, err
			}
		}
	}
	return message, nil
}
