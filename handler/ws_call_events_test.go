package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/security"
	"gigwork-chat-app/usecase"
)

func newCallEventsHandler(chats usecase.ChatUsecase) (*WebSocketHandler, *hub.Hub) {
	h := hub.New(newTestLogger())
	handler := &WebSocketHandler{
		Log:      newTestLogger(),
		Validate: validator.New(),
		Hub:      h,
		Calls:    hub.NewCallRegistry(0, nil),
		Chats:    chats,
	}
	return handler, h
}

func TestInitiateCallRequiresMembership(t *testing.T) {
	chats := new(mockChatUsecase)
	handler, h := newCallEventsHandler(chats)

	stranger := &memClient{userID: "stranger"}
	callee := &memClient{userID: "callee-1"}
	h.Register("stranger", stranger)
	h.Register("callee-1", callee)

	chats.On("VerifyMembership", mock.Anything, "chat-1", "stranger").
		Return(apperr.Unauthorizedf("user %s is not a participant of chat %s", "stranger", "chat-1"))

	payload, _ := json.Marshal(req.CallRequest{ChatID: "chat-1", CallerID: "stranger", CalleeID: "callee-1"})
	handler.onInitiateCall(context.Background(), security.Identity{UserID: "stranger"}, stranger, payload)

	assert.Equal(t, []string{dto.EventCallError}, stranger.eventNames())
	assert.Empty(t, callee.eventNames())
	_, err := handler.Calls.Authorize("chat-1", "stranger")
	assert.True(t, apperr.IsNotFound(err), "no call record may exist after a rejected initiate")
}

func TestIceCandidateRelayKeepsEventKind(t *testing.T) {
	chats := new(mockChatUsecase)
	handler, h := newCallEventsHandler(chats)

	caller := &memClient{userID: "caller-1"}
	callee := &memClient{userID: "callee-1"}
	h.Register("caller-1", caller)
	h.Register("callee-1", callee)

	chats.On("VerifyMembership", mock.Anything, "chat-1", "caller-1").Return(nil)

	initiate, _ := json.Marshal(req.CallRequest{ChatID: "chat-1", CallerID: "caller-1", CalleeID: "callee-1"})
	handler.dispatch(security.Identity{UserID: "caller-1"}, caller, dto.Envelope{Event: dto.EventInitiateCall, Data: initiate})

	candidate, _ := json.Marshal(req.SignalRequest{
		ChatID:     "chat-1",
		FromUserID: "caller-1",
		ToUserID:   "callee-1",
		Candidate:  json.RawMessage(`{"sdpMid":"0"}`),
	})
	handler.dispatch(security.Identity{UserID: "caller-1"}, caller, dto.Envelope{Event: dto.EventIceCandidate, Data: candidate})

	assert.Equal(t, []string{dto.EventIncomingCall, dto.EventIceCandidate}, callee.eventNames())

	offer, _ := json.Marshal(req.SignalRequest{
		ChatID:     "chat-1",
		FromUserID: "caller-1",
		ToUserID:   "callee-1",
		Signal:     json.RawMessage(`{"type":"offer"}`),
	})
	handler.dispatch(security.Identity{UserID: "caller-1"}, caller, dto.Envelope{Event: dto.EventSignalCall, Data: offer})

	assert.Equal(t, []string{dto.EventIncomingCall, dto.EventIceCandidate, dto.EventCallSignal}, callee.eventNames())
}

func TestSignalToOfflinePeerReportsError(t *testing.T) {
	handler, h := newCallEventsHandler(new(mockChatUsecase))

	caller := &memClient{userID: "caller-1"}
	h.Register("caller-1", caller)

	_, err := handler.Calls.Initiate("chat-1", "caller-1", "callee-1")
	require.NoError(t, err)

	payload, _ := json.Marshal(req.SignalRequest{
		ChatID:     "chat-1",
		FromUserID: "caller-1",
		ToUserID:   "callee-1",
		Signal:     json.RawMessage(`{"type":"offer"}`),
	})
	handler.onSignalCall(security.Identity{UserID: "caller-1"}, caller, payload, dto.EventCallSignal)

	event, ok := caller.lastEvent()
	require.True(t, ok)
	assert.Equal(t, dto.EventCallError, event.Event)

	var body res.ErrorResponse
	require.NoError(t, json.Unmarshal(event.Data, &body))
	assert.Equal(t, 404, body.StatusCode)
}
