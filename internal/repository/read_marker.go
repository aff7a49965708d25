package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"messaging-backend/internal/model"
)

type IReadMarkerRepository interface {
	// Upsert inserts or replaces the marker for (username, channel). The
	// new value is stored as given; monotonicity is the caller's concern.
	Upsert(ctx context.Context, marker *model.ReadMarker) error
	// Get returns 0 when no marker row exists ("nothing seen").
	Get(ctx context.Context, username, channelName string) (int64, error)
}

type ReadMarkerRepository struct {
	db *gorm.DB
}

func NewReadMarkerRepository(db *gorm.DB) IReadMarkerRepository {
	return &ReadMarkerRepository{db: db}
}

func (r *ReadMarkerRepository) Upsert(ctx context.Context, marker *model.ReadMarker) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}, {Name: "channel_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen_id"}),
		}).
		Create(marker).Error
}

func (r *ReadMarkerRepository) Get(ctx context.Context, username, channelName string) (int64, error) {
	var marker model.ReadMarker
	err := r.db.WithContext(ctx).
		Where("username = ? AND channel_name = ?", username, channelName).
		First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return marker.LastSeenID, nil
}
