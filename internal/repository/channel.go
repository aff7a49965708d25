package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"messaging-backend/internal/model"
)

// IChannelRepository defines the interface for channel and membership data
// operations. Multi-step writes (channel plus memberships, cascading
// deletes) run inside a single transaction so a partial failure rolls
// everything back.
type IChannelRepository interface {
	CreateWithMembers(ctx context.Context, channel *model.Channel, usernames ...string) error
	// FindByName returns (nil, nil) when no channel matches.
	FindByName(ctx context.Context, name string) (*model.Channel, error)
	// Delete removes the channel's memberships and read markers, then the
	// channel row itself.
	Delete(ctx context.Context, name string) error
	AddMember(ctx context.Context, channelName, username string) error
	IsMember(ctx context.Context, channelName, username string) (bool, error)
	ListAll(ctx context.Context) ([]*model.Channel, error)
	ListForUser(ctx context.Context, username string) ([]*model.Channel, error)
	// ListMembers returns the channel's users with role included and
	// password omitted.
	ListMembers(ctx context.Context, channelName string) ([]*model.User, error)
	CountAdmins(ctx context.Context, channelName string) (int64, error)
}

// ChannelRepository implements IChannelRepository on gorm
type ChannelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new IChannelRepository instance
func NewChannelRepository(db *gorm.DB) IChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) CreateWithMembers(ctx context.Context, channel *model.Channel, usernames ...string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(channel).Error; err != nil {
			return err
		}
		for _, username := range usernames {
			membership := &model.Membership{
				Username:    username,
				ChannelName: channel.Name,
			}
			if err := tx.Create(membership).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ChannelRepository) FindByName(ctx context.Context, name string) (*model.Channel, error) {
	var channel model.Channel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_name = ?", name).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("channel_name = ?", name).Delete(&model.ReadMarker{}).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", name).Delete(&model.Channel{}).Error
	})
}

func (r *ChannelRepository) AddMember(ctx context.Context, channelName, username string) error {
	membership := &model.Membership{
		Username:    username,
		ChannelName: channelName,
	}
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *ChannelRepository) IsMember(ctx context.Context, channelName, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("channel_name = ? AND username = ?", channelName, username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ChannelRepository) ListAll(ctx context.Context) ([]*model.Channel, error) {
	var channels []*model.Channel
	if err := r.db.WithContext(ctx).Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) ListForUser(ctx context.Context, username string) ([]*model.Channel, error) {
	var channels []*model.Channel
	err := r.db.WithContext(ctx).
		Table("channels").
		Joins("JOIN membership ON channels.name = membership.channel_name").
		Where("membership.username = ?", username).
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) ListMembers(ctx context.Context, channelName string) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.username", "users.role").
		Joins("JOIN membership ON users.username = membership.username").
		Where("membership.channel_name = ?", channelName).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *ChannelRepository) CountAdmins(ctx context.Context, channelName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN membership ON users.username = membership.username").
		Where("membership.channel_name = ? AND UPPER(users.role) = ?", channelName, model.RoleAdmin).
		Count(&count).Error
	return count, err
}
