package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

const deletedMessagePlaceholder = "This message was deleted"

type chatUsecase struct {
	chats         ChatStore
	jobs          JobStore
	users         UserStore
	notifications NotificationUsecase
	log           *logrus.Logger
}

func NewChatUsecase(chats ChatStore, jobs JobStore, users UserStore, notifications NotificationUsecase, log *logrus.Logger) ChatUsecase {
	return &chatUsecase{chats: chats, jobs: jobs, users: users, notifications: notifications, log: log}
}

func (uc *chatUsecase) EnsureChat(ctx context.Context, jobSeekerID string, payload req.CreateChatRequest) (*res.ChatCreated, bool, error) {
	job, err := uc.jobs.FindByID(ctx, payload.JobID)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.chats.FindForJobPair(ctx, payload.ClientID, jobSeekerID, payload.JobID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		participants, err := uc.chats.FindParticipants(ctx, existing.ID)
		if err != nil {
			return nil, false, err
		}
		return &res.ChatCreated{
			ChatID:       existing.ID,
			ChatTitle:    existing.Title,
			ChatStatus:   existing.Status,
			JobID:        existing.JobID,
			Participants: participants,
		}, false, nil
	}

	chat := &entity.Chat{
		Title:         job.Title,
		Status:        enum.ChatStatusPending,
		JobID:         payload.JobID,
		OfferStatus:   enum.OfferStatusNone,
		LastMessageAt: time.Now(),
	}
	participants := []entity.Participant{
		{UserID: &payload.ClientID},
		{JobSeekerID: &jobSeekerID},
	}
	created, err := uc.chats.CreateWithParticipants(ctx, chat, participants)
	if err != nil {
		return nil, false, err
	}
	if !created {
		// A concurrent create for the same triple won the race; chat now
		// holds the surviving row and the side effects below already ran.
		survivors, err := uc.chats.FindParticipants(ctx, chat.ID)
		if err != nil {
			return nil, false, err
		}
		return &res.ChatCreated{
			ChatID:       chat.ID,
			ChatTitle:    chat.Title,
			ChatStatus:   chat.Status,
			JobID:        chat.JobID,
			Participants: survivors,
		}, false, nil
	}

	if err := uc.jobs.IncrementApplicants(ctx, payload.JobID); err != nil {
		uc.log.WithError(err).WithField("jobId", payload.JobID).Warn("failed to bump applicant count")
	}

	seeker, err := uc.users.FindByID(ctx, jobSeekerID)
	seekerName := "A job seeker"
	if err == nil {
		seekerName = seeker.FullName()
	}
	if err := uc.notifications.Notify(ctx, &entity.Notification{
		ClientID:    payload.ClientID,
		JobSeekerID: &jobSeekerID,
		Type:        "chat_request",
		Title:       "New chat request",
		Message:     seekerName + " wants to discuss \"" + job.Title + "\"",
		RelatedIDs:  entity.StringList{chat.ID, payload.JobID},
	}, payload.ClientID); err != nil {
		uc.log.WithError(err).Warn("failed to record chat request notification")
	}

	return &res.ChatCreated{
		ChatID:       chat.ID,
		ChatTitle:    chat.Title,
		ChatStatus:   chat.Status,
		JobID:        chat.JobID,
		Participants: participants,
	}, true, nil
}

func (uc *chatUsecase) GetUserChats(ctx context.Context, userID string, role enum.Role) ([]res.ChatSummary, error) {
	chats, err := uc.chats.FindChatsForUser(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	summaries := make([]res.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summary := res.ChatSummary{
			ID:          chat.ID,
			CreatedAt:   chat.CreatedAt,
			ChatTitle:   chat.Title,
			ChatStatus:  chat.Status,
			JobID:       chat.JobID,
			Offer:       chat.Offer,
			OfferStatus: chat.OfferStatus,
		}

		for i := range chat.Participants {
			p := &chat.Participants[i]
			if p.Holds(userID) {
				continue
			}
			if otherID := sideUserID(p); otherID != "" {
				summary.OtherParticipantID = otherID
				if other, err := uc.users.FindByID(ctx, otherID); err == nil {
					summary.ParticipantName = other.FullName()
					summary.ProfileImage = other.ProfileImage
				}
			}
		}

		summary.LastMessageTime = chat.LastMessageAt
		if len(chat.Messages) > 0 {
			last := chat.Messages[0]
			summary.SenderID = last.SenderID
			summary.LastMessageTime = last.SentAt
			summary.LastMessage = previewFor(&last, userID)
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (uc *chatUsecase) VerifyMembership(ctx context.Context, chatID, userID string) error {
	_, err := uc.chats.FindParticipant(ctx, chatID, userID)
	return err
}

func (uc *chatUsecase) GetChatStatus(ctx context.Context, chatID, userID string) (*res.ChatStatusView, error) {
	if _, err := uc.chats.FindParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}
	chat, err := uc.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return &res.ChatStatusView{ChatID: chat.ID, ChatStatus: chat.Status}, nil
}

func (uc *chatUsecase) ApproveChat(ctx context.Context, chatID, userID string) error {
	chat, changed, err := uc.decideChat(ctx, chatID, userID, enum.ChatStatusApproved)
	if err != nil || !changed {
		return err
	}

	participants, err := uc.chats.FindParticipants(ctx, chatID)
	if err != nil {
		uc.log.WithError(err).Warn("failed to resolve participants for approval notification")
		return nil
	}
	for i := range participants {
		if participants[i].JobSeekerID == nil {
			continue
		}
		seekerID := *participants[i].JobSeekerID
		if err := uc.notifications.Notify(ctx, &entity.Notification{
			ClientID:    userID,
			JobSeekerID: &seekerID,
			Type:        "chat_approved",
			Title:       "Chat approved",
			Message:     "Your chat request for \"" + chat.Title + "\" was approved",
			RelatedIDs:  entity.StringList{chatID, chat.JobID},
		}, seekerID); err != nil {
			uc.log.WithError(err).Warn("failed to record approval notification")
		}
	}
	return nil
}

func (uc *chatUsecase) RejectChat(ctx context.Context, chatID, userID string) error {
	_, _, err := uc.decideChat(ctx, chatID, userID, enum.ChatStatusRejected)
	return err
}

// decideChat is client-side only and idempotent: repeating a decision that
// already holds reports changed=false instead of an error.
func (uc *chatUsecase) decideChat(ctx context.Context, chatID, userID string, target enum.ChatStatus) (*entity.Chat, bool, error) {
	participant, err := uc.chats.FindParticipant(ctx, chatID, userID)
	if err != nil {
		return nil, false, err
	}
	if !participant.IsClientSide() {
		return nil, false, apperr.Unauthorizedf("only the client can decide chat %s", chatID)
	}

	chat, err := uc.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, false, err
	}
	if chat.Status == target {
		return chat, false, nil
	}
	if err := uc.chats.UpdateStatus(ctx, chatID, target); err != nil {
		return nil, false, err
	}
	return chat, true, nil
}

func (uc *chatUsecase) DeleteChat(ctx context.Context, userID string, payload req.DeleteChatRequest) error {
	if _, err := uc.chats.FindParticipant(ctx, payload.ChatID, userID); err != nil {
		return err
	}
	return uc.chats.SoftDeleteSide(ctx, payload.ChatID, userID, enum.ParseRole(payload.UserRole))
}

func sideUserID(p *entity.Participant) string {
	if p.UserID != nil {
		return *p.UserID
	}
	if p.JobSeekerID != nil {
		return *p.JobSeekerID
	}
	return ""
}

// previewFor renders a message into a one-line chat list preview from the
// viewer's side.
func previewFor(m *entity.Message, viewerID string) string {
	if !m.VisibleTo(viewerID) {
		return deletedMessagePlaceholder
	}
	switch m.Type {
	case enum.MessageTypeImage:
		if m.SenderID == viewerID {
			return "You sent a photo"
		}
		return "Sent a photo"
	case enum.MessageTypeFile:
		if m.SenderID == viewerID {
			return "You sent a file"
		}
		return "Sent a file"
	default:
		return m.Content
	}
}
