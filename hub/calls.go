package hub

import (
	"sync"
	"time"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/enum"
)

// Call is one in-progress call attempt, keyed by chat. It exists only to
// relay opaque signaling payloads between two online peers; nothing about it
// is durable.
type Call struct {
	ChatID    string
	CallerID  string
	CalleeID  string
	Status    enum.CallStatus
	StartedAt time.Time

	timer *time.Timer
}

// Peer returns the other party of the call.
func (c Call) Peer(userID string) string {
	if userID == c.CallerID {
		return c.CalleeID
	}
	return c.CallerID
}

func (c Call) involves(userID string) bool {
	return c.CallerID == userID || c.CalleeID == userID
}

// CallRegistry tracks in-progress call attempts. A ringing call that nobody
// answers is auto-ended after ringTimeout; the source had no such cut-off and
// a dangling call would block the chat's call slot forever.
type CallRegistry struct {
	mu            sync.Mutex
	calls         map[string]*Call
	ringTimeout   time.Duration
	onRingTimeout func(call Call)
}

func NewCallRegistry(ringTimeout time.Duration, onRingTimeout func(call Call)) *CallRegistry {
	return &CallRegistry{
		calls:         make(map[string]*Call),
		ringTimeout:   ringTimeout,
		onRingTimeout: onRingTimeout,
	}
}

// Initiate moves the chat's call slot from absent to ringing.
func (r *CallRegistry) Initiate(chatID, callerID, calleeID string) (Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.calls[chatID]; ok {
		return Call{}, apperr.InvalidStatef("call already in progress for chat %s", chatID)
	}

	call := &Call{
		ChatID:    chatID,
		CallerID:  callerID,
		CalleeID:  calleeID,
		Status:    enum.CallStatusRinging,
		StartedAt: time.Now(),
	}
	if r.ringTimeout > 0 {
		call.timer = time.AfterFunc(r.ringTimeout, func() { r.expire(chatID) })
	}
	r.calls[chatID] = call
	return *call, nil
}

// Accept transitions ringing -> accepted. Only the stored callee may accept.
func (r *CallRegistry) Accept(chatID, calleeID string) (Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call, ok := r.calls[chatID]
	if !ok {
		return Call{}, apperr.NotFoundf("call for chat %s", chatID)
	}
	if call.CalleeID != calleeID {
		return Call{}, apperr.Unauthorizedf("user %s is not the callee", calleeID)
	}
	if call.Status != enum.CallStatusRinging {
		return Call{}, apperr.InvalidStatef("call for chat %s is %s", chatID, call.Status)
	}

	call.Status = enum.CallStatusAccepted
	call.stopTimer()
	return *call, nil
}

// Reject is terminal: the entry is removed.
func (r *CallRegistry) Reject(chatID, calleeID string) (Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call, ok := r.calls[chatID]
	if !ok {
		return Call{}, apperr.NotFoundf("call for chat %s", chatID)
	}
	if call.CalleeID != calleeID {
		return Call{}, apperr.Unauthorizedf("user %s is not the callee", calleeID)
	}

	call.stopTimer()
	delete(r.calls, chatID)
	ended := *call
	ended.Status = enum.CallStatusRejected
	return ended, nil
}

// End is terminal and idempotent: ending an absent call reports ok=false.
func (r *CallRegistry) End(chatID string) (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call, ok := r.calls[chatID]
	if !ok {
		return Call{}, false
	}
	call.stopTimer()
	delete(r.calls, chatID)
	ended := *call
	ended.Status = enum.CallStatusEnded
	return ended, true
}

// Authorize checks that a relay payload comes from one of the stored peers.
func (r *CallRegistry) Authorize(chatID, fromUserID string) (Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call, ok := r.calls[chatID]
	if !ok {
		return Call{}, apperr.NotFoundf("call for chat %s", chatID)
	}
	if !call.involves(fromUserID) {
		return Call{}, apperr.Unauthorizedf("user %s is not part of this call", fromUserID)
	}
	return *call, nil
}

// DropUser force-ends every call the user participates in, returning the
// ended calls so the survivors can be notified. Called on disconnect.
func (r *CallRegistry) DropUser(userID string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ended []Call
	for chatID, call := range r.calls {
		if !call.involves(userID) {
			continue
		}
		call.stopTimer()
		delete(r.calls, chatID)
		gone := *call
		gone.Status = enum.CallStatusEnded
		ended = append(ended, gone)
	}
	return ended
}

func (r *CallRegistry) expire(chatID string) {
	r.mu.Lock()
	call, ok := r.calls[chatID]
	if !ok || call.Status != enum.CallStatusRinging {
		r.mu.Unlock()
		return
	}
	delete(r.calls, chatID)
	expired := *call
	expired.Status = enum.CallStatusEnded
	r.mu.Unlock()

	if r.onRingTimeout != nil {
		r.onRingTimeout(expired)
	}
}

func (c *Call) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
	}
}
