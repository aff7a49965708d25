package services

import (
	"context"

	"messaging-backend/internal/repository"
)

// AuthzService is the authorization gate consumed by every other service:
// membership checks for channel operations, admin checks for moderation.
// All checks are pure reads against the directories.
type AuthzService struct {
	userRepo    repository.IUserRepository
	channelRepo repository.IChannelRepository
}

func NewAuthzService(userRepo repository.IUserRepository, channelRepo repository.IChannelRepository) *AuthzService {
	return &AuthzService{
		userRepo:    userRepo,
		channelRepo: channelRepo,
	}
}

// IsMember reports whether a membership edge exists for (username, channel).
func (s *AuthzService) IsMember(ctx context.Context, username, channelName string) (bool, error) {
	ok, err := s.channelRepo.IsMember(ctx, channelName, username)
	if err != nil {
		return false, storeErr(err)
	}
	return ok, nil
}

// RequireMember fails with ErrNotMember when the edge is absent.
func (s *AuthzService) RequireMember(ctx context.Context, username, channelName string) error {
	ok, err := s.IsMember(ctx, username, channelName)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}

// IsAdmin reports whether the user's role grants admin authority.
// Unknown users are simply not admins.
func (s *AuthzService) IsAdmin(ctx context.Context, username string) (bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return false, storeErr(err)
	}
	if user == nil {
		return false, nil
	}
	return user.IsAdmin(), nil
}

// RequireAdmin fails with ErrNotAdmin for members and unknown users.
func (s *AuthzService) RequireAdmin(ctx context.Context, username string) error {
	ok, err := s.IsAdmin(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAdmin
	}
	return nil
}
