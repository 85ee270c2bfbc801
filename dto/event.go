package dto

import "encoding/json"

// Envelope is the wire frame for every websocket event, inbound and outbound:
// a named event kind plus a structured payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEvent marshals payload into an outbound envelope. Marshal errors are
// impossible for the payload types we emit, so they are swallowed.
func NewEvent(event string, payload interface{}) Envelope {
	data, _ := json.Marshal(payload)
	return Envelope{Event: event, Data: data}
}

// Inbound event kinds.
const (
	EventFetchUserChats = "fetch_user_chats"
	EventJoinChat       = "join_chat"
	EventLeaveChat      = "leave_chat"
	EventSendMessage    = "send_message"
	EventFetchMessages  = "fetch_messages"
	EventMarkAsSeen     = "mark_as_seen"
	EventMarkAsRead     = "mark_as_read"
	EventMakeOffer      = "make_offer"
	EventAcceptOffer    = "accept_offer"
	EventRejectOffer    = "reject_offer"
	EventGetChatOffer   = "get_chat_offer"
	EventUploadImage    = "upload_image"
	EventUploadFile     = "upload_file"
	EventDeleteMessage  = "delete-message"
	EventDeleteChat     = "delete_chat"
	EventRegisterUser   = "register_user"
	EventGetOnlineUsers = "get_online_users"
	EventInitiateCall   = "initiate_call"
	EventAcceptCall     = "accept_call"
	EventRejectCall     = "reject_call"
	EventEndCall        = "end_call"
	EventSignalCall     = "signal_call"
	EventIceCandidate   = "ice_candidate"
)

// Outbound event kinds.
const (
	EventUserChatsFetched   = "user_chats_fetched"
	EventReceiveMessage     = "receive_message"
	EventMessageDelivered   = "message_delivered"
	EventChatUpdated        = "chat_updated"
	EventMessageSeen        = "message_seen"
	EventMessagesRead       = "messages_read"
	EventMessagesFetched    = "messages_fetched"
	EventOfferMadeSuccess   = "offer_made_success"
	EventOfferAccepted      = "offer_accepted"
	EventOfferRejected      = "offer_rejected"
	EventOfferNotification  = "offer_notification"
	EventChatOfferData      = "chat_offer_data"
	EventChatApproved       = "chat_approved"
	EventChatRejected       = "chat_rejected"
	EventMessageDeleted     = "message-deleted"
	EventChatDeletedSuccess = "chat_deleted_success"
	EventOnlineUsers        = "online_users"
	EventUserOnline         = "user_online"
	EventUserOffline        = "user_offline"
	EventNewChat            = "new_chat"
	EventIncomingCall       = "incoming_call"
	EventCallInitiated      = "call_initiated"
	EventCallAccepted       = "call_accepted"
	EventCallRejected       = "call_rejected"
	EventCallEnded          = "call_ended"
	EventCallSignal         = "call_signal"
	EventFileUploadResponse = "file_upload_response"
)

// Error event kinds, one per failing inbound family.
const (
	EventUserChatsError   = "user_chats_error"
	EventMessageError     = "message_error"
	EventMessagesError    = "messages_error"
	EventMakeOfferError   = "make_offer_error"
	EventOfferError       = "offer_error"
	EventDeleteError      = "delete-error"
	EventChatDeletedError = "chat_deleted_error"
	EventCallError        = "call_error"
)
