package req

import "encoding/json"

type CallRequest struct {
	ChatID   string `json:"chatId" validate:"required"`
	CallerID string `json:"callerId" validate:"required"`
	CalleeID string `json:"calleeId" validate:"required"`
	Reason   string `json:"reason,omitempty"`
}

// SignalRequest relays an opaque negotiation payload between the two peers of
// an active call; the payload is never inspected.
type SignalRequest struct {
	ChatID     string          `json:"chatId" validate:"required"`
	Signal     json.RawMessage `json:"signal,omitempty"`
	Candidate  json.RawMessage `json:"candidate,omitempty"`
	FromUserID string          `json:"fromUserId" validate:"required"`
	ToUserID   string          `json:"toUserId" validate:"required"`
}
