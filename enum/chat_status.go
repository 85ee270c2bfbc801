package enum

type ChatStatus string

const (
	ChatStatusPending  ChatStatus = "pending"
	ChatStatusApproved ChatStatus = "approved"
	ChatStatusRejected ChatStatus = "rejected"
)
