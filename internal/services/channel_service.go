package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-backend/internal/model"
	"messaging-backend/internal/repository"
)

// ChannelService is the channel directory: channel records, memberships
// and the aggregated per-channel view the client renders.
type ChannelService struct {
	channelRepo repository.IChannelRepository
	messageRepo repository.IMessageRepository
	markerRepo  repository.IReadMarkerRepository
	authz       *AuthzService
}

func NewChannelService(
	channelRepo repository.IChannelRepository,
	messageRepo repository.IMessageRepository,
	markerRepo repository.IReadMarkerRepository,
	authz *AuthzService,
) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		markerRepo:  markerRepo,
		authz:       authz,
	}
}

// ChannelData is everything the client needs to render one channel.
type ChannelData struct {
	MemberChannels []*model.Channel `json:"channels"`
	Members        []*model.User    `json:"users"`
	Messages       []*model.Message `json:"messages"`
	LastSeenID     int64            `json:"last_seen_id"`
}

func (s *ChannelService) ListAllChannels(ctx context.Context) ([]*model.Channel, error) {
	channels, err := s.channelRepo.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return channels, nil
}

func (s *ChannelService) ListUserChannels(ctx context.Context, username string) ([]*model.Channel, error) {
	channels, err := s.channelRepo.ListForUser(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	return channels, nil
}

func (s *ChannelService) ListMembers(ctx context.Context, channelName string) ([]*model.User, error) {
	users, err := s.channelRepo.ListMembers(ctx, channelName)
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (s *ChannelService) CountAdmins(ctx context.Context, channelName string) (int64, error) {
	count, err := s.channelRepo.CountAdmins(ctx, channelName)
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// CreateChannel inserts a public channel and the creator's membership in
// one transaction, so a failed membership write cannot leave an orphan
// channel behind.
func (s *ChannelService) CreateChannel(ctx context.Context, name, creator string) error {
	if creator == "" {
		return ErrNoCreator
	}
	channel := &model.Channel{Name: name, Type: model.ChannelPublic}
	if err := s.channelRepo.CreateWithMembers(ctx, channel, creator); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrChannelExists
		}
		return storeErr(err)
	}
	return nil
}

// CreateDMChannel inserts a direct channel and both memberships in one
// transaction.
func (s *ChannelService) CreateDMChannel(ctx context.Context, name, user1, user2 string) error {
	if user1 == "" || user2 == "" {
		return ErrMissingParticipant
	}
	channel := &model.Channel{Name: name, Type: model.ChannelDirect}
	if err := s.channelRepo.CreateWithMembers(ctx, channel, user1, user2); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrChannelExists
		}
		return storeErr(err)
	}
	return nil
}

// DeleteChannel removes the channel, its memberships and its read markers.
// Existence is checked first so "not found" is distinguishable from a
// failed delete.
func (s *ChannelService) DeleteChannel(ctx context.Context, name string) error {
	channel, err := s.channelRepo.FindByName(ctx, name)
	if err != nil {
		return storeErr(err)
	}
	if channel == nil {
		return ErrChannelNotFound
	}
	if err := s.channelRepo.Delete(ctx, name); err != nil {
		return storeErr(err)
	}
	return nil
}

// JoinChannel adds a membership edge. A duplicate join fails with
// ErrJoinFailed; retrying a successful join is expected to fail this way.
func (s *ChannelService) JoinChannel(ctx context.Context, name, username string) error {
	if err := s.channelRepo.AddMember(ctx, name, username); err != nil {
		return errors.Join(ErrJoinFailed, err)
	}
	return nil
}

// GetChannelData returns the aggregated channel view. Membership is
// required before anything is read.
func (s *ChannelService) GetChannelData(ctx context.Context, username, channelName string) (*ChannelData, error) {
	if err := s.authz.RequireMember(ctx, username, channelName); err != nil {
		return nil, err
	}

	memberChannels, err := s.channelRepo.ListForUser(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	members, err := s.channelRepo.ListMembers(ctx, channelName)
	if err != nil {
		return nil, storeErr(err)
	}
	messages, err := s.messageRepo.ListByChannel(ctx, channelName)
	if err != nil {
		return nil, storeErr(err)
	}
	lastSeen, err := s.markerRepo.Get(ctx, username, channelName)
	if err != nil {
		return nil, storeErr(err)
	}

	return &ChannelData{
		MemberChannels: memberChannels,
		Members:        members,
		Messages:       messages,
		LastSeenID:     lastSeen,
	}, nil
}
