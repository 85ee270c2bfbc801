package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

type ChatRepository struct {
	Repository[entity.Chat]
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{Repository[entity.Chat]{DB: db}}
}

func (r *ChatRepository) FindByID(ctx context.Context, id string) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("chat %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindForJobPair locates the chat for a (client, job seeker, job) triple;
// this is what makes chat creation idempotent. Returns nil without error when
// absent.
func (r *ChatRepository) FindForJobPair(ctx context.Context, clientID, jobSeekerID, jobID string) (*entity.Chat, error) {
	return findChatForJobPair(r.DB.WithContext(ctx), clientID, jobSeekerID, jobID)
}

func findChatForJobPair(db *gorm.DB, clientID, jobSeekerID, jobID string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.
		Joins("JOIN t_participant cp1 ON cp1.chat_id = t_chat.id").
		Joins("JOIN t_participant cp2 ON cp2.chat_id = t_chat.id").
		Where("t_chat.job_id = ? AND cp1.user_id = ? AND cp2.job_seeker_id = ?", jobID, clientID, jobSeekerID).
		First(&chat).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateWithParticipants inserts the chat and its two participant rows unless
// a concurrent call for the same (client, seeker, job) triple got there
// first. A transaction-scoped advisory lock keyed on the triple serializes
// racing creates; the loser re-reads the winner's row once the lock is
// granted, copies it into chat and reports created=false.
func (r *ChatRepository) CreateWithParticipants(ctx context.Context, chat *entity.Chat, participants []entity.Participant) (bool, error) {
	var clientID, jobSeekerID string
	for i := range participants {
		if participants[i].UserID != nil {
			clientID = *participants[i].UserID
		}
		if participants[i].JobSeekerID != nil {
			jobSeekerID = *participants[i].JobSeekerID
		}
	}

	created := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lockKey := chat.JobID + ":" + clientID + ":" + jobSeekerID
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
			return err
		}

		existing, err := findChatForJobPair(tx, clientID, jobSeekerID, chat.JobID)
		if err != nil {
			return err
		}
		if existing != nil {
			*chat = *existing
			return nil
		}

		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		for i := range participants {
			participants[i].ChatID = chat.ID
		}
		if err := tx.Create(&participants).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// FindChatsForUser lists the chats still visible to the caller's side,
// newest activity first, with participants and messages preloaded for
// preview rendering.
func (r *ChatRepository) FindChatsForUser(ctx context.Context, userID string, role enum.Role) ([]entity.Chat, error) {
	q := r.DB.WithContext(ctx).
		Model(&entity.Chat{}).
		Joins("JOIN t_participant p ON p.chat_id = t_chat.id")

	if role == enum.RoleJobSeeker {
		q = q.Where("p.job_seeker_id = ? AND p.deleted_by_job_seeker = false", userID)
	} else {
		q = q.Where("p.user_id = ? AND p.deleted_by_client = false", userID)
	}

	var chats []entity.Chat
	err := q.
		Preload("Participants").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at DESC, seq DESC")
		}).
		Order("last_message_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *ChatRepository) FindParticipants(ctx context.Context, chatID string) ([]entity.Participant, error) {
	var participants []entity.Participant
	err := r.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Find(&participants).Error
	return participants, err
}

// FindParticipant resolves the caller's membership row by an indexed query,
// matching either side's user linkage.
func (r *ChatRepository) FindParticipant(ctx context.Context, chatID, userID string) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.DB.WithContext(ctx).
		Where("chat_id = ? AND (user_id = ? OR job_seeker_id = ?)", chatID, userID, userID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorizedf("user %s is not a participant of chat %s", userID, chatID)
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *ChatRepository) UpdateStatus(ctx context.Context, chatID string, status enum.ChatStatus) error {
	return r.DB.WithContext(ctx).
		Model(&entity.Chat{}).
		Where("id = ?", chatID).
		Update("status", status).Error
}

func (r *ChatRepository) TouchLastMessage(ctx context.Context, chatID string, at time.Time) error {
	return r.DB.WithContext(ctx).
		Model(&entity.Chat{}).
		Where("id = ?", chatID).
		Update("last_message_at", at).Error
}

// CasOffer transitions the chat's offer slot only when the current status is
// one of expectFrom; the loser of a concurrent race sees ErrInvalidState and
// must re-fetch.
func (r *ChatRepository) CasOffer(ctx context.Context, chatID string, amount *float64, expectFrom []enum.OfferStatus, to enum.OfferStatus) (*entity.Chat, error) {
	updates := map[string]interface{}{"offer_status": to}
	if amount != nil {
		updates["offer"] = *amount
	}

	tx := r.DB.WithContext(ctx).
		Model(&entity.Chat{}).
		Where("id = ? AND offer_status IN ?", chatID, expectFrom).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, chatID); err != nil {
			return nil, err
		}
		return nil, apperr.InvalidStatef("stale offer state on chat %s", chatID)
	}
	return r.FindByID(ctx, chatID)
}

// SoftDeleteSide hides the chat for one side only; the other side's view is
// untouched.
func (r *ChatRepository) SoftDeleteSide(ctx context.Context, chatID, userID string, role enum.Role) error {
	q := r.DB.WithContext(ctx).Model(&entity.Participant{}).Where("chat_id = ?", chatID)
	if role == enum.RoleJobSeeker {
		return q.Where("job_seeker_id = ?", userID).
			Update("deleted_by_job_seeker", true).Error
	}
	return q.Where("user_id = ?", userID).
		Update("deleted_by_client", true).Error
}
