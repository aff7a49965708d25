package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"messaging-backend/internal/model"
	"messaging-backend/internal/repository"
	logger "messaging-backend/middleware/log"
)

// EventPublisher receives a notification for every appended message.
// Implementations must not block the send path longer than their own
// timeouts; a publish failure never fails the append.
type EventPublisher interface {
	MessageSent(ctx context.Context, message *model.Message) error
}

// MessageService is the append-only message log. Ids are assigned by the
// store and never reused; concurrent appends against one channel are
// serialized by the store, not here.
type MessageService struct {
	messageRepo repository.IMessageRepository
	authz       *AuthzService
	publisher   EventPublisher // nil in degraded mode
	log         *logger.Logger
}

func NewMessageService(
	messageRepo repository.IMessageRepository,
	authz *AuthzService,
	publisher EventPublisher,
	log *logger.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		authz:       authz,
		publisher:   publisher,
		log:         log,
	}
}

// Send appends a message. Membership is checked before anything reaches
// the log; a rejected sender appends nothing.
func (s *MessageService) Send(ctx context.Context, sender, channelName, text string) (*model.Message, error) {
	if err := s.authz.RequireMember(ctx, sender, channelName); err != nil {
		return nil, err
	}

	message := &model.Message{
		ChannelName: channelName,
		Username:    sender,
		Text:        text,
		SentAt:      time.Now(),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, storeErr(err)
	}

	if s.publisher != nil {
		if err := s.publisher.MessageSent(ctx, message); err != nil {
			s.log.WarnContext(ctx, "failed to publish message event",
				zap.Int64("message_id", message.ID),
				zap.String("channel", channelName),
				zap.Error(err))
		}
	}
	return message, nil
}

// ListByChannel returns all messages for the channel in id order.
func (s *MessageService) ListByChannel(ctx context.Context, channelName string) ([]*model.Message, error) {
	messages, err := s.messageRepo.ListByChannel(ctx, channelName)
	if err != nil {
		return nil, storeErr(err)
	}
	return messages, nil
}

// Latest returns the newest message, or (nil, nil) when the channel has
// no messages yet. The empty channel is a first-class state, not an error.
func (s *MessageService) Latest(ctx context.Context, channelName string) (*model.Message, error) {
	message, err := s.messageRepo.Latest(ctx, channelName)
	if err != nil {
		return nil, storeErr(err)
	}
	return message, nil
}

// LatestFor is Latest gated by membership, for callers acting on behalf
// of a principal.
func (s *MessageService) LatestFor(ctx context.Context, username, channelName string) (*model.Message, error) {
	if err := s.authz.RequireMember(ctx, username, channelName); err != nil {
		return nil, err
	}
	return s.Latest(ctx, channelName)
}

// Delete removes a message irreversibly. The admin gate runs before any
// store mutation; a member's delete touches nothing.
func (s *MessageService) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.authz.RequireAdmin(ctx, actor); err != nil {
		return err
	}

	rows, err := s.messageRepo.DeleteByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if rows == 0 {
		return ErrMessageNotFound
	}
	return nil
}
