package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/entity"
)

// MessageRepository is the message log: append-only rows plus their
// per-recipient read markers. Deletion never removes a row, only flips the
// side flags, so read receipts stay valid against stable message IDs.
type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{Repository[entity.Message]{DB: db}}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	return r.DB.WithContext(ctx).Create(message).Error
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("message %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListSince returns a bounded ascending page of the chat's log. An empty
// cursor yields the newest page; otherwise the page starts after the cursor
// message. Order is sentAt then insertion sequence, so it is total.
func (r *MessageRepository) ListSince(ctx context.Context, chatID, cursor string, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	var messages []entity.Message
	if cursor == "" {
		err := r.DB.WithContext(ctx).
			Where("chat_id = ?", chatID).
			Order("sent_at DESC, seq DESC").
			Limit(limit).
			Find(&messages).Error
		if err != nil {
			return nil, err
		}
		reverse(messages)
		return messages, nil
	}

	after, err := r.FindByID(ctx, cursor)
	if err != nil {
		return nil, err
	}
	err = r.DB.WithContext(ctx).
		Where("chat_id = ? AND (sent_at > ? OR (sent_at = ? AND seq > ?))",
			chatID, after.SentAt, after.SentAt, after.Seq).
		Order("sent_at ASC, seq ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) LatestInChat(ctx context.Context, chatID string) (*entity.Message, error) {
	var message entity.Message
	err := r.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("sent_at DESC, seq DESC").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("no messages in chat %s", chatID)
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// SetDeletionFlags flips only the provided side flags; a nil pointer leaves
// that side untouched.
func (r *MessageRepository) SetDeletionFlags(ctx context.Context, messageID string, bySender, byReceiver *bool) error {
	updates := map[string]interface{}{}
	if bySender != nil {
		updates["deleted_by_sender"] = *bySender
	}
	if byReceiver != nil {
		updates["deleted_by_receiver"] = *byReceiver
	}
	if len(updates) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ?", messageID).
		Updates(updates).Error
}

// CreateUnread seeds one unread marker per recipient participant. The sender
// never gets a row for their own message.
func (r *MessageRepository) CreateUnread(ctx context.Context, messageID string, participantIDs []string) error {
	if len(participantIDs) == 0 {
		return nil
	}
	statuses := make([]entity.ReadStatus, 0, len(participantIDs))
	for _, pid := range participantIDs {
		statuses = append(statuses, entity.ReadStatus{MessageID: messageID, ParticipantID: pid})
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "participant_id"}},
			DoNothing: true,
		}).
		Create(&statuses).Error
}

// MarkChatSeen stamps every still-unread marker the participant holds for
// messages in the chat not authored by them. Returns how many rows changed.
func (r *MessageRepository) MarkChatSeen(ctx context.Context, chatID, participantID, excludeSenderID string, at time.Time) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Model(&entity.ReadStatus{}).
		Where("participant_id = ? AND read_at IS NULL", participantID).
		Where("message_id IN (?)", r.DB.
			Model(&entity.Message{}).
			Select("id").
			Where("chat_id = ? AND sender_id <> ?", chatID, excludeSenderID)).
		Update("read_at", at)
	return tx.RowsAffected, tx.Error
}

// MarkRead acknowledges an explicit set of messages, creating markers that do
// not exist yet. IDs outside the chat or authored by the reader are discarded
// before the upsert; a sender never gains a marker for their own message.
func (r *MessageRepository) MarkRead(ctx context.Context, chatID string, messageIDs []string, participantID, readerUserID string, at time.Time) error {
	if len(messageIDs) == 0 {
		return nil
	}
	var eligible []string
	err := r.DB.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id IN ? AND chat_id = ? AND sender_id <> ?", messageIDs, chatID, readerUserID).
		Pluck("id", &eligible).Error
	if err != nil {
		return err
	}
	if len(eligible) == 0 {
		return nil
	}

	statuses := make([]entity.ReadStatus, 0, len(eligible))
	for _, mid := range eligible {
		readAt := at
		statuses = append(statuses, entity.ReadStatus{MessageID: mid, ParticipantID: participantID, ReadAt: &readAt})
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "participant_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"read_at": at}),
		}).
		Create(&statuses).Error
}

func (r *MessageRepository) FindReadStatuses(ctx context.Context, messageIDs []string) ([]entity.ReadStatus, error) {
	var statuses []entity.ReadStatus
	err := r.DB.WithContext(ctx).
		Where("message_id IN ?", messageIDs).
		Find(&statuses).Error
	return statuses, err
}

func reverse(messages []entity.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
