package usecase

import (
	"context"

	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/entity"
)

// OfferOutcome carries the chat and job after an offer transition, for
// building room notices.
type OfferOutcome struct {
	Chat *entity.Chat
	Job  *entity.Job
}

type OfferUsecase interface {
	// Propose sets or revises the seeker's offer. Allowed from the none,
	// pending and rejected states.
	Propose(ctx context.Context, userID string, payload req.MakeOfferRequest) (*OfferOutcome, error)
	// Accept moves a pending offer to accepted and assigns the job to the
	// seeker. Concurrent deciders race on the transition; exactly one wins.
	Accept(ctx context.Context, userID string, payload req.OfferDecisionRequest) (*OfferOutcome, error)
	Reject(ctx context.Context, userID string, payload req.OfferDecisionRequest) (*OfferOutcome, error)
	GetOffer(ctx context.Context, userID, chatID string) (*res.OfferState, error)
}
