package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-backend/internal/model"
	"messaging-backend/internal/repository"
	"messaging-backend/internal/utils"
)

// UserService is the user directory: registration, credential checks and
// role administration.
type UserService struct {
	userRepo repository.IUserRepository
	authz    *AuthzService
}

func NewUserService(userRepo repository.IUserRepository, authz *AuthzService) *UserService {
	return &UserService{
		userRepo: userRepo,
		authz:    authz,
	}
}

// Register creates the user and its default membership into the General
// channel as one transaction. The role must be MEMBER or ADMIN.
func (s *UserService) Register(ctx context.Context, username, password, role string) error {
	if !model.ValidRole(role) {
		return ErrInvalidRole
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: hash,
		Role:     role,
	}
	if err := s.userRepo.CreateWithDefaultMembership(ctx, user, model.GeneralChannel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return storeErr(err)
	}
	return nil
}

// Login verifies the credentials and returns the verified identity.
// Unknown user and wrong password surface identically.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, ErrAuthentication
	}
	return user, nil
}

// FindByUsername resolves a user or fails with ErrUserNotFound.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetRole changes the target user's role. Only admins may call it; the
// gate runs before any store mutation.
func (s *UserService) SetRole(ctx context.Context, actor, target, role string) error {
	if err := s.authz.RequireAdmin(ctx, actor); err != nil {
		return err
	}
	if !model.ValidRole(role) {
		return ErrInvalidRole
	}

	rows, err := s.userRepo.UpdateRole(ctx, target, role)
	if err != nil {
		return storeErr(err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchUsers matches usernames case-insensitively on a substring. An
// empty result is a valid outcome, not an error.
func (s *UserService) SearchUsers(ctx context.Context, substring string) ([]*model.User, error) {
	users, err := s.userRepo.Search(ctx, substring)
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}
