package handler

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/security"
	"gigwork-chat-app/usecase"
)

func (handler *WebSocketHandler) onSendMessage(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.SendMessageRequest
	if !handler.decode(client, data, &payload, dto.EventMessageError) {
		return
	}

	result, err := handler.Messages.SendMessage(ctx, identity.UserID, payload)
	if err != nil {
		handler.reportError(client, dto.EventMessageError, err)
		return
	}
	handler.fanOutMessage(ctx, identity, client, result)
}

// fanOutMessage runs the shared post-store path for text and media messages:
// room multicast, sender ack, and the global chat list refresh.
func (handler *WebSocketHandler) fanOutMessage(ctx context.Context, identity security.Identity, client hub.Client, result *usecase.SendResult) {
	delivered := false
	for _, userID := range result.RecipientUserIDs {
		if _, online := handler.Hub.Lookup(userID); online {
			delivered = true
			break
		}
	}

	broadcast := dto.BroadcastMessage{Message: *result.Message, IsDelivered: delivered}
	handler.Hub.EmitRoom(result.Message.ChatID, dto.NewEvent(dto.EventReceiveMessage, broadcast))
	handler.Hub.EmitRoom(result.Message.ChatID, dto.NewEvent(dto.EventMessageDelivered, fiber.Map{
		"messageId":   result.Message.ID,
		"chatId":      result.Message.ChatID,
		"isDelivered": delivered,
	}))

	update := dto.ChatUpdate{
		ID:              result.Message.ChatID,
		LastMessage:     result.Message.Content,
		LastMessageTime: result.Message.SentAt,
		IsDelivered:     delivered,
	}
	if sender, err := handler.Users.GetProfile(ctx, identity.UserID); err == nil {
		update.ParticipantName = sender.FullName()
		update.ProfileImage = sender.ProfileImage
	}
	handler.Hub.EmitGlobal(dto.NewEvent(dto.EventChatUpdated, update))
}

func (handler *WebSocketHandler) onFetchMessages(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.FetchMessagesRequest
	if !handler.decode(client, data, &payload, dto.EventMessagesError) {
		return
	}
	page, err := handler.Messages.ListMessages(ctx, identity.UserID, payload)
	if err != nil {
		handler.reportError(client, dto.EventMessagesError, err)
		return
	}
	client.Send(dto.NewEvent(dto.EventMessagesFetched, page))
}

func (handler *WebSocketHandler) onMarkAsSeen(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.MarkSeenRequest
	if !handler.decode(client, data, &payload, dto.EventMessagesError) {
		return
	}
	result, err := handler.Messages.MarkSeen(ctx, identity.UserID, payload)
	if err != nil {
		handler.reportError(client, dto.EventMessagesError, err)
		return
	}
	// Nothing was unread; re-announcing the newest message would be noise.
	if result.Updated == 0 {
		return
	}
	handler.Hub.EmitRoom(payload.ChatID, dto.NewEvent(dto.EventMessageSeen, fiber.Map{
		"chatId":          payload.ChatID,
		"latestMessageId": result.LatestMessageID,
		"seenBy":          identity.UserID,
	}))
}

func (handler *WebSocketHandler) onMarkAsRead(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.MarkReadRequest
	if !handler.decode(client, data, &payload, dto.EventMessagesError) {
		return
	}
	if err := handler.Messages.MarkRead(ctx, identity.UserID, payload); err != nil {
		handler.reportError(client, dto.EventMessagesError, err)
		return
	}
	handler.Hub.EmitRoomExcept(payload.ChatID, identity.UserID, dto.NewEvent(dto.EventMessagesRead, fiber.Map{
		"chatId":     payload.ChatID,
		"messageIds": payload.MessageIDs,
		"readBy":     identity.UserID,
	}))
}

func (handler *WebSocketHandler) onDeleteMessage(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.DeleteMessageRequest
	if !handler.decode(client, data, &payload, dto.EventDeleteError) {
		return
	}
	message, err := handler.Messages.DeleteMessage(ctx, identity.UserID, payload)
	if err != nil {
		handler.reportError(client, dto.EventDeleteError, err)
		return
	}
	handler.Hub.EmitRoom(payload.ChatID, dto.NewEvent(dto.EventMessageDeleted, fiber.Map{
		"messageId":    message.ID,
		"chatId":       payload.ChatID,
		"deletionType": payload.DeletionType,
		"deletedBy":    identity.UserID,
	}))
}
