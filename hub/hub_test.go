package hub_test

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/hub"
)

// fakeClient is a transport-less Client that records what the hub sends it.
type fakeClient struct {
	mu     sync.Mutex
	userID string
	events []dto.Envelope
	closed bool
	broken bool
}

func newFakeClient(userID string) *fakeClient {
	return &fakeClient{userID: userID}
}

func (c *fakeClient) UserID() string { return c.userID }

func (c *fakeClient) Send(event dto.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken || c.closed {
		return hub.ErrClientGone
	}
	c.events = append(c.events, event)
	return nil
}

func (c *fakeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeClient) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.events))
	for _, e := range c.events {
		names = append(names, e.Event)
	}
	return names
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newTestHub() *hub.Hub {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return hub.New(log)
}

func TestHub_RegisterAndLookup(t *testing.T) {
	h := newTestHub()
	alice := newFakeClient("alice")

	h.Register("alice", alice)

	got, ok := h.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, alice, got)
	assert.ElementsMatch(t, []string{"alice"}, h.OnlineUserIDs())
}

func TestHub_DuplicateRegistrationEvictsPrior(t *testing.T) {
	h := newTestHub()
	first := newFakeClient("alice")
	second := newFakeClient("alice")

	h.Register("alice", first)
	h.Register("alice", second)

	assert.True(t, first.isClosed())
	got, ok := h.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestHub_StaleUnregisterKeepsNewerConnection(t *testing.T) {
	h := newTestHub()
	first := newFakeClient("alice")
	second := newFakeClient("alice")

	h.Register("alice", first)
	h.Register("alice", second)
	h.Unregister("alice", first)

	_, ok := h.Lookup("alice")
	assert.True(t, ok, "newer registration must survive a stale disconnect")
}

func TestHub_EmitRoomReachesOnlyMembers(t *testing.T) {
	h := newTestHub()
	alice := newFakeClient("alice")
	bob := newFakeClient("bob")
	carol := newFakeClient("carol")

	h.Register("alice", alice)
	h.Register("bob", bob)
	h.Register("carol", carol)
	h.Join("chat-1", "alice")
	h.Join("chat-1", "bob")

	h.EmitRoom("chat-1", dto.NewEvent(dto.EventReceiveMessage, nil))

	assert.Equal(t, []string{dto.EventReceiveMessage}, alice.received())
	assert.Equal(t, []string{dto.EventReceiveMessage}, bob.received())
	assert.Empty(t, carol.received())
}

func TestHub_EmitRoomExceptSkipsActor(t *testing.T) {
	h := newTestHub()
	alice := newFakeClient("alice")
	bob := newFakeClient("bob")

	h.Register("alice", alice)
	h.Register("bob", bob)
	h.Join("chat-1", "alice")
	h.Join("chat-1", "bob")

	h.EmitRoomExcept("chat-1", "alice", dto.NewEvent(dto.EventMessagesRead, nil))

	assert.Empty(t, alice.received())
	assert.Equal(t, []string{dto.EventMessagesRead}, bob.received())
}

func TestHub_LeaveStopsRoomDelivery(t *testing.T) {
	h := newTestHub()
	alice := newFakeClient("alice")
	h.Register("alice", alice)
	h.Join("chat-1", "alice")
	h.Leave("chat-1", "alice")

	h.EmitRoom("chat-1", dto.NewEvent(dto.EventReceiveMessage, nil))

	assert.Empty(t, alice.received())
}

func TestHub_EmitGlobalReachesEveryConnection(t *testing.T) {
	h := newTestHub()
	alice := newFakeClient("alice")
	bob := newFakeClient("bob")
	h.Register("alice", alice)
	h.Register("bob", bob)

	h.EmitGlobal(dto.NewEvent(dto.EventChatUpdated, nil))

	assert.Equal(t, []string{dto.EventChatUpdated}, alice.received())
	assert.Equal(t, []string{dto.EventChatUpdated}, bob.received())
}

func TestHub_EmitUserOffline(t *testing.T) {
	h := newTestHub()

	delivered := h.EmitUser("ghost", dto.NewEvent(dto.EventCallSignal, nil))

	assert.False(t, delivered)
}

func TestHub_StalledConnectionIsEvicted(t *testing.T) {
	h := newTestHub()
	alice := newFakeClient("alice")
	alice.broken = true

	var evicted string
	h.OnEvict(func(userID string) { evicted = userID })

	h.Register("alice", alice)
	h.Join("chat-1", "alice")
	h.EmitRoom("chat-1", dto.NewEvent(dto.EventReceiveMessage, nil))

	_, ok := h.Lookup("alice")
	assert.False(t, ok)
	assert.True(t, alice.isClosed())
	assert.Equal(t, "alice", evicted)
}

func TestHub_UnregisterClearsRoomMembership(t *testing.T) {
	h := newTestHub()
	alice := newFakeClient("alice")
	h.Register("alice", alice)
	h.Join("chat-1", "alice")

	h.Unregister("alice", alice)

	assert.Empty(t, h.RoomMembers("chat-1"))
}
