package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-backend/internal/model"
)

// IUserRepository defines the interface for user data operations
type IUserRepository interface {
	// CreateWithDefaultMembership inserts the user and the membership into
	// the default channel as one transaction.
	CreateWithDefaultMembership(ctx context.Context, user *model.User, channelName string) error
	// FindByUsername returns (nil, nil) when no user matches.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// UpdateRole returns the number of rows changed; zero means the
	// username did not resolve.
	UpdateRole(ctx context.Context, username, role string) (int64, error)
	// Search matches usernames case-insensitively on a substring.
	// Passwords are not loaded.
	Search(ctx context.Context, substring string) ([]*model.User, error)
}

// UserRepository implements IUserRepository on gorm
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new IUserRepository instance
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateWithDefaultMembership(ctx context.Context, user *model.User, channelName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		membership := &model.Membership{
			Username:    user.Username,
			ChannelName: channelName,
		}
		return tx.Create(membership).Error
	})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, username, role string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Update("role", role)
	return result.RowsAffected, result.Error
}

func (r *UserRepository) Search(ctx context.Context, substring string) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).
		Select("username", "role").
		Where("LOWER(username) LIKE LOWER(?)", "%"+substring+"%").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
