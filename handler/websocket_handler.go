package handler

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/security"
	"gigwork-chat-app/usecase"
)

// WebSocketHandler owns the chat gateway: it authenticates the handshake,
// registers the connection with the hub and dispatches every inbound event to
// the matching usecase.
type WebSocketHandler struct {
	Log      *logrus.Logger
	Validate *validator.Validate
	JWT      *security.JWT
	Hub      *hub.Hub
	Calls    *hub.CallRegistry
	Chats    usecase.ChatUsecase
	Messages usecase.MessageUsecase
	Offers   usecase.OfferUsecase
	Users    usecase.UserUsecase
}

func NewWebSocketHandler(
	log *logrus.Logger,
	validate *validator.Validate,
	jwt *security.JWT,
	h *hub.Hub,
	calls *hub.CallRegistry,
	chats usecase.ChatUsecase,
	messages usecase.MessageUsecase,
	offers usecase.OfferUsecase,
	users usecase.UserUsecase,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		Log:      log,
		Validate: validate,
		JWT:      jwt,
		Hub:      h,
		Calls:    calls,
		Chats:    chats,
		Messages: messages,
		Offers:   offers,
		Users:    users,
	}
	h.OnEvict(handler.cleanupUser)
	return handler
}

// HandleWebSocket is the connection goroutine. The credential is checked
// before any event is read; a connection that fails the check is closed
// without a registration.
func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	token := c.Query("token")
	identity, err := handler.JWT.VerifyIdentity(token)
	if err != nil {
		handler.Log.WithError(err).Warn("websocket handshake rejected")
		c.WriteJSON(dto.NewEvent(dto.EventUserChatsError, res.ErrorResponse{
			Status:     fiber.ErrUnauthorized.Message,
			StatusCode: fiber.StatusUnauthorized,
			Error:      "Token is not valid",
		}))
		c.Close()
		return
	}

	client := hub.NewWSClient(identity.UserID, c)
	handler.Hub.Register(identity.UserID, client)
	client.ConfigureRead()
	go client.Run()

	handler.Log.Infof("user %s connected", identity.UserID)
	handler.Hub.EmitGlobal(dto.NewEvent(dto.EventUserOnline, fiber.Map{"userId": identity.UserID}))

	defer func() {
		handler.Hub.Unregister(identity.UserID, client)
		client.Close()
		handler.cleanupUser(identity.UserID)
	}()

	for {
		var envelope dto.Envelope
		if err := c.ReadJSON(&envelope); err != nil {
			handler.Log.WithError(err).Debugf("read loop ended for user %s", identity.UserID)
			return
		}
		handler.dispatch(identity, client, envelope)
	}
}

// cleanupUser runs the shared disconnect path: dangling calls are ended and
// everyone learns the user went offline. Also fired when the hub evicts a
// stalled connection.
func (handler *WebSocketHandler) cleanupUser(userID string) {
	for _, call := range handler.Calls.DropUser(userID) {
		handler.Hub.EmitUser(call.Peer(userID), dto.NewEvent(dto.EventCallEnded, fiber.Map{
			"chatId": call.ChatID,
			"endedBy": userID,
			"reason": "disconnected",
		}))
	}
	handler.Hub.EmitGlobal(dto.NewEvent(dto.EventUserOffline, fiber.Map{"userId": userID}))
	handler.Log.Infof("user %s disconnected", userID)
}

func (handler *WebSocketHandler) dispatch(identity security.Identity, client hub.Client, envelope dto.Envelope) {
	ctx := context.Background()

	switch envelope.Event {
	case dto.EventRegisterUser:
		handler.onRegisterUser(ctx, identity, client)
	case dto.EventGetOnlineUsers:
		handler.onGetOnlineUsers(ctx, client)
	case dto.EventFetchUserChats:
		handler.onFetchUserChats(ctx, identity, client)
	case dto.EventJoinChat:
		handler.onJoinChat(ctx, identity, client, envelope.Data)
	case dto.EventLeaveChat:
		handler.onLeaveChat(identity, envelope.Data)
	case dto.EventSendMessage:
		handler.onSendMessage(ctx, identity, client, envelope.Data)
	case dto.EventFetchMessages:
		handler.onFetchMessages(ctx, identity, client, envelope.Data)
	case dto.EventMarkAsSeen:
		handler.onMarkAsSeen(ctx, identity, client, envelope.Data)
	case dto.EventMarkAsRead:
		handler.onMarkAsRead(ctx, identity, client, envelope.Data)
	case dto.EventDeleteMessage:
		handler.onDeleteMessage(ctx, identity, client, envelope.Data)
	case dto.EventDeleteChat:
		handler.onDeleteChat(ctx, identity, client, envelope.Data)
	case dto.EventUploadImage:
		handler.onUploadImage(ctx, identity, client, envelope.Data)
	case dto.EventUploadFile:
		handler.onUploadFile(ctx, identity, client, envelope.Data)
	case dto.EventMakeOffer:
		handler.onMakeOffer(ctx, identity, client, envelope.Data)
	case dto.EventAcceptOffer:
		handler.onAcceptOffer(ctx, identity, client, envelope.Data)
	case dto.EventRejectOffer:
		handler.onRejectOffer(ctx, identity, client, envelope.Data)
	case dto.EventGetChatOffer:
		handler.onGetChatOffer(ctx, identity, client, envelope.Data)
	case dto.EventInitiateCall:
		handler.onInitiateCall(ctx, identity, client, envelope.Data)
	case dto.EventAcceptCall:
		handler.onAcceptCall(identity, client, envelope.Data)
	case dto.EventRejectCall:
		handler.onRejectCall(identity, client, envelope.Data)
	case dto.EventEndCall:
		handler.onEndCall(identity, client, envelope.Data)
	case dto.EventSignalCall:
		handler.onSignalCall(identity, client, envelope.Data, dto.EventCallSignal)
	case dto.EventIceCandidate:
		handler.onSignalCall(identity, client, envelope.Data, dto.EventIceCandidate)
	default:
		handler.Log.Warnf("unknown event %q from user %s", envelope.Event, identity.UserID)
	}
}

// decode unmarshals and validates an inbound payload; a failure is reported
// on errEvent and stops the handler.
func (handler *WebSocketHandler) decode(client hub.Client, data json.RawMessage, payload interface{}, errEvent string) bool {
	if err := json.Unmarshal(data, payload); err != nil {
		handler.sendError(client, errEvent, fiber.StatusBadRequest, "malformed payload")
		return false
	}
	if err := handler.Validate.Struct(payload); err != nil {
		handler.sendError(client, errEvent, fiber.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (handler *WebSocketHandler) sendError(client hub.Client, event string, statusCode int, message string) {
	client.Send(dto.NewEvent(event, res.ErrorResponse{
		Status:     "error",
		StatusCode: statusCode,
		Error:      message,
	}))
}

// reportError maps a usecase error onto the event family's error kind.
func (handler *WebSocketHandler) reportError(client hub.Client, event string, err error) {
	status := fiber.StatusInternalServerError
	switch {
	case apperr.IsNotFound(err), apperr.IsRecipientOffline(err):
		status = fiber.StatusNotFound
	case apperr.IsUnauthorized(err):
		status = fiber.StatusForbidden
	case apperr.IsInvalidState(err):
		status = fiber.StatusConflict
	case apperr.IsTransport(err):
		status = fiber.StatusBadGateway
	}
	if status == fiber.StatusInternalServerError {
		handler.Log.WithError(err).Error("event handling failed")
	}
	handler.sendError(client, event, status, err.Error())
}
