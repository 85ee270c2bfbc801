package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

type offerUsecase struct {
	chats         ChatStore
	jobs          JobStore
	notifications NotificationUsecase
	log           *logrus.Logger
}

func NewOfferUsecase(chats ChatStore, jobs JobStore, notifications NotificationUsecase, log *logrus.Logger) OfferUsecase {
	return &offerUsecase{chats: chats, jobs: jobs, notifications: notifications, log: log}
}

func (uc *offerUsecase) Propose(ctx context.Context, userID string, payload req.MakeOfferRequest) (*OfferOutcome, error) {
	participant, err := uc.chats.FindParticipant(ctx, payload.ChatID, userID)
	if err != nil {
		return nil, err
	}
	if !participant.IsJobSeekerSide() {
		return nil, apperr.Unauthorizedf("only the job seeker can make an offer on chat %s", payload.ChatID)
	}

	job, err := uc.jobs.FindByID(ctx, payload.JobID)
	if err != nil {
		return nil, err
	}

	chat, err := uc.chats.CasOffer(ctx, payload.ChatID, &payload.OfferAmount,
		[]enum.OfferStatus{enum.OfferStatusNone, enum.OfferStatusPending, enum.OfferStatusRejected},
		enum.OfferStatusPending)
	if err != nil {
		return nil, err
	}

	if err := uc.notifications.Notify(ctx, &entity.Notification{
		ClientID:    job.ClientID,
		JobSeekerID: &userID,
		Type:        "offer_received",
		Title:       "New offer",
		Message:     fmt.Sprintf("You received an offer of %.2f for \"%s\"", payload.OfferAmount, job.Title),
		RelatedIDs:  entity.StringList{chat.ID, job.ID},
	}, job.ClientID); err != nil {
		uc.log.WithError(err).Warn("failed to record offer notification")
	}

	return &OfferOutcome{Chat: chat, Job: job}, nil
}

func (uc *offerUsecase) Accept(ctx context.Context, userID string, payload req.OfferDecisionRequest) (*OfferOutcome, error) {
	chat, job, seekerID, applied, err := uc.decide(ctx, userID, payload, enum.OfferStatusAccepted)
	if err != nil {
		return nil, err
	}
	// A repeat accept lands here with applied=false; the job was already
	// assigned by the accept that won, so nothing below may run again.
	if !applied {
		return &OfferOutcome{Chat: chat, Job: job}, nil
	}

	// The CAS admits exactly one accept, so the assignment below runs at most
	// once per offer.
	if chat.Offer == nil {
		return nil, apperr.InvalidStatef("accepted offer on chat %s has no amount", chat.ID)
	}
	if seekerID == "" {
		return nil, apperr.InvalidStatef("chat %s has no job seeker participant", chat.ID)
	}
	if err := uc.jobs.AssignSeeker(ctx, job.ID, seekerID, *chat.Offer, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.notifications.Notify(ctx, &entity.Notification{
		ClientID:    job.ClientID,
		JobSeekerID: &seekerID,
		Type:        "offer_accepted",
		Title:       "Offer accepted",
		Message:     fmt.Sprintf("Your offer for \"%s\" was accepted", job.Title),
		RelatedIDs:  entity.StringList{chat.ID, job.ID},
	}, seekerID); err != nil {
		uc.log.WithError(err).Warn("failed to record acceptance notification")
	}

	return &OfferOutcome{Chat: chat, Job: job}, nil
}

func (uc *offerUsecase) Reject(ctx context.Context, userID string, payload req.OfferDecisionRequest) (*OfferOutcome, error) {
	chat, job, seekerID, applied, err := uc.decide(ctx, userID, payload, enum.OfferStatusRejected)
	if err != nil {
		return nil, err
	}
	if !applied {
		return &OfferOutcome{Chat: chat, Job: job}, nil
	}

	if seekerID != "" {
		if err := uc.notifications.Notify(ctx, &entity.Notification{
			ClientID:    job.ClientID,
			JobSeekerID: &seekerID,
			Type:        "offer_rejected",
			Title:       "Offer rejected",
			Message:     fmt.Sprintf("Your offer for \"%s\" was rejected", job.Title),
			RelatedIDs:  entity.StringList{chat.ID, job.ID},
		}, seekerID); err != nil {
			uc.log.WithError(err).Warn("failed to record rejection notification")
		}
	}

	return &OfferOutcome{Chat: chat, Job: job}, nil
}

// decide validates the caller is the client side, then runs the pending-only
// transition. A decision that already holds reports applied=false instead of
// an error, so repeating it stays a no-op; any other stale state surfaces as
// ErrInvalidState.
func (uc *offerUsecase) decide(ctx context.Context, userID string, payload req.OfferDecisionRequest, to enum.OfferStatus) (*entity.Chat, *entity.Job, string, bool, error) {
	participant, err := uc.chats.FindParticipant(ctx, payload.ChatID, userID)
	if err != nil {
		return nil, nil, "", false, err
	}
	if !participant.IsClientSide() {
		return nil, nil, "", false, apperr.Unauthorizedf("only the client can decide the offer on chat %s", payload.ChatID)
	}

	job, err := uc.jobs.FindByID(ctx, payload.JobID)
	if err != nil {
		return nil, nil, "", false, err
	}

	applied := true
	chat, err := uc.chats.CasOffer(ctx, payload.ChatID, nil,
		[]enum.OfferStatus{enum.OfferStatusPending}, to)
	if err != nil {
		if !apperr.IsInvalidState(err) {
			return nil, nil, "", false, err
		}
		current, ferr := uc.chats.FindByID(ctx, payload.ChatID)
		if ferr != nil || current.OfferStatus != to {
			return nil, nil, "", false, err
		}
		chat = current
		applied = false
	}

	participants, err := uc.chats.FindParticipants(ctx, payload.ChatID)
	if err != nil {
		return nil, nil, "", false, err
	}
	var seekerID string
	for i := range participants {
		if participants[i].JobSeekerID != nil {
			seekerID = *participants[i].JobSeekerID
			break
		}
	}
	return chat, job, seekerID, applied, nil
}

func (uc *offerUsecase) GetOffer(ctx context.Context, userID, chatID string) (*res.OfferState, error) {
	if _, err := uc.chats.FindParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}
	chat, err := uc.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return &res.OfferState{Offer: chat.Offer, OfferStatus: chat.OfferStatus}, nil
}
