package handler

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/security"
)

func (handler *WebSocketHandler) onInitiateCall(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.CallRequest
	if !handler.decode(client, data, &payload, dto.EventCallError) {
		return
	}
	if err := handler.Chats.VerifyMembership(ctx, payload.ChatID, identity.UserID); err != nil {
		handler.reportError(client, dto.EventCallError, err)
		return
	}

	// Signaling needs a live peer on the other end; there is no voicemail.
	if _, online := handler.Hub.Lookup(payload.CalleeID); !online {
		handler.reportError(client, dto.EventCallError, apperr.RecipientOfflinef("user %s", payload.CalleeID))
		return
	}

	call, err := handler.Calls.Initiate(payload.ChatID, identity.UserID, payload.CalleeID)
	if err != nil {
		handler.reportError(client, dto.EventCallError, err)
		return
	}

	handler.Hub.EmitUser(call.CalleeID, dto.NewEvent(dto.EventIncomingCall, fiber.Map{
		"chatId":   call.ChatID,
		"callerId": call.CallerID,
		"calleeId": call.CalleeID,
		"status":   call.Status,
	}))
	client.Send(dto.NewEvent(dto.EventCallInitiated, fiber.Map{
		"chatId": call.ChatID,
		"status": call.Status,
	}))
}

func (handler *WebSocketHandler) onAcceptCall(identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.CallRequest
	if !handler.decode(client, data, &payload, dto.EventCallError) {
		return
	}
	call, err := handler.Calls.Accept(payload.ChatID, identity.UserID)
	if err != nil {
		handler.reportError(client, dto.EventCallError, err)
		return
	}

	accepted := dto.NewEvent(dto.EventCallAccepted, fiber.Map{
		"chatId":   call.ChatID,
		"callerId": call.CallerID,
		"calleeId": call.CalleeID,
	})
	handler.Hub.EmitUser(call.CallerID, accepted)
	client.Send(accepted)
}

func (handler *WebSocketHandler) onRejectCall(identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.CallRequest
	if !handler.decode(client, data, &payload, dto.EventCallError) {
		return
	}
	call, err := handler.Calls.Reject(payload.ChatID, identity.UserID)
	if err != nil {
		handler.reportError(client, dto.EventCallError, err)
		return
	}

	handler.Hub.EmitUser(call.CallerID, dto.NewEvent(dto.EventCallRejected, fiber.Map{
		"chatId": call.ChatID,
		"reason": payload.Reason,
	}))
}

func (handler *WebSocketHandler) onEndCall(identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.CallRequest
	if err := json.Unmarshal(data, &payload); err != nil || payload.ChatID == "" {
		handler.sendError(client, dto.EventCallError, fiber.StatusBadRequest, "malformed payload")
		return
	}

	call, ok := handler.Calls.End(payload.ChatID)
	if !ok {
		// Ending twice is fine; both sides race to hang up.
		return
	}
	handler.Hub.EmitUser(call.Peer(identity.UserID), dto.NewEvent(dto.EventCallEnded, fiber.Map{
		"chatId":  call.ChatID,
		"endedBy": identity.UserID,
	}))
}

// onSignalCall relays opaque negotiation payloads between the two peers of an
// authorized call; the payload is never inspected. The relay keeps the
// inbound kind, so offers go out as call_signal and candidates as
// ice_candidate.
func (handler *WebSocketHandler) onSignalCall(identity security.Identity, client hub.Client, data json.RawMessage, outEvent string) {
	var payload req.SignalRequest
	if !handler.decode(client, data, &payload, dto.EventCallError) {
		return
	}

	if _, err := handler.Calls.Authorize(payload.ChatID, identity.UserID); err != nil {
		handler.reportError(client, dto.EventCallError, err)
		return
	}

	relayed := dto.NewEvent(outEvent, fiber.Map{
		"chatId":     payload.ChatID,
		"fromUserId": identity.UserID,
		"signal":     payload.Signal,
		"candidate":  payload.Candidate,
	})
	if !handler.Hub.EmitUser(payload.ToUserID, relayed) {
		handler.reportError(client, dto.EventCallError, apperr.RecipientOfflinef("user %s", payload.ToUserID))
	}
}
