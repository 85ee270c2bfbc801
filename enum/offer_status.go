package enum

type OfferStatus string

const (
	OfferStatusNone     OfferStatus = "none"
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)
