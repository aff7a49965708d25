package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-backend/internal/model"
)

type IMessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	// ListByChannel returns the channel's messages in insertion order.
	ListByChannel(ctx context.Context, channelName string) ([]*model.Message, error)
	// Latest returns (nil, nil) when the channel has no messages yet.
	Latest(ctx context.Context, channelName string) (*model.Message, error)
	// DeleteByID returns the number of rows removed; zero means no message
	// had that id.
	DeleteByID(ctx context.Context, id int64) (int64, error)
	// UnreadChannels returns the distinct channel names holding at least
	// one message the user has not acknowledged.
	UnreadChannels(ctx context.Context, username string) ([]string, error)
}

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) IMessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepository) ListByChannel(ctx context.Context, channelName string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.WithContext(ctx).
		Where("channel_name = ?", channelName).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) Latest(ctx context.Context, channelName string) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Where("channel_name = ?", channelName).
		Order("sent_at DESC, id DESC").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Message{})
	return result.RowsAffected, result.Error
}

func (r *MessageRepository) UnreadChannels(ctx context.Context, username string) ([]string, error) {
	// A channel is unread when the user has no marker row for it at all,
	// or any message id exceeds the marker.
	var names []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT m.channel_name
		FROM messages m
		LEFT JOIN read_markers rm ON rm.channel_name = m.channel_name AND rm.username = ?
		WHERE rm.last_seen_id IS NULL OR m.id > rm.last_seen_id`, username).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
