package handler

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/security"
)

func (handler *WebSocketHandler) onRegisterUser(ctx context.Context, identity security.Identity, client hub.Client) {
	// Registration already happened at handshake; this re-announces presence
	// and hands the caller the current roster.
	handler.Hub.EmitGlobal(dto.NewEvent(dto.EventUserOnline, fiber.Map{"userId": identity.UserID}))
	handler.onGetOnlineUsers(ctx, client)
}

func (handler *WebSocketHandler) onGetOnlineUsers(ctx context.Context, client hub.Client) {
	profiles := handler.Users.OnlineProfiles(ctx, handler.Hub.OnlineUserIDs())
	client.Send(dto.NewEvent(dto.EventOnlineUsers, profiles))
}

func (handler *WebSocketHandler) onFetchUserChats(ctx context.Context, identity security.Identity, client hub.Client) {
	summaries, err := handler.Chats.GetUserChats(ctx, identity.UserID, identity.Role)
	if err != nil {
		handler.reportError(client, dto.EventUserChatsError, err)
		return
	}
	client.Send(dto.NewEvent(dto.EventUserChatsFetched, summaries))
}

func (handler *WebSocketHandler) onJoinChat(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.JoinChatRequest
	if !handler.decode(client, data, &payload, dto.EventUserChatsError) {
		return
	}
	// Membership is checked before the connection enters the room; a rejected
	// join must not leave a subscription behind.
	if err := handler.Chats.VerifyMembership(ctx, payload.ChatID, identity.UserID); err != nil {
		handler.reportError(client, dto.EventUserChatsError, err)
		return
	}
	handler.Hub.Join(payload.ChatID, identity.UserID)

	// Joining a room implies the backlog was displayed; sweep the unread
	// markers so the other side sees the seen tick.
	result, err := handler.Messages.MarkSeen(ctx, identity.UserID, req.MarkSeenRequest{ChatID: payload.ChatID})
	if err != nil {
		handler.reportError(client, dto.EventUserChatsError, err)
		return
	}
	if result.Updated > 0 {
		handler.Hub.EmitRoom(payload.ChatID, dto.NewEvent(dto.EventMessageSeen, fiber.Map{
			"chatId":          payload.ChatID,
			"latestMessageId": result.LatestMessageID,
			"seenBy":          identity.UserID,
		}))
	}
}

func (handler *WebSocketHandler) onLeaveChat(identity security.Identity, data json.RawMessage) {
	var payload req.JoinChatRequest
	if err := json.Unmarshal(data, &payload); err != nil || payload.ChatID == "" {
		return
	}
	handler.Hub.Leave(payload.ChatID, identity.UserID)
}

func (handler *WebSocketHandler) onDeleteChat(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.DeleteChatRequest
	if !handler.decode(client, data, &payload, dto.EventChatDeletedError) {
		return
	}
	if err := handler.Chats.DeleteChat(ctx, identity.UserID, payload); err != nil {
		handler.reportError(client, dto.EventChatDeletedError, err)
		return
	}
	handler.Hub.Leave(payload.ChatID, identity.UserID)
	client.Send(dto.NewEvent(dto.EventChatDeletedSuccess, fiber.Map{"chatId": payload.ChatID}))
}
