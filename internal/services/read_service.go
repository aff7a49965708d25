package services

import (
	"context"

	"messaging-backend/internal/model"
	"messaging-backend/internal/repository"
)

// ReadService is the read tracker: per-user-per-channel watermarks over
// the message log and the unread-channel set derived from them.
type ReadService struct {
	markerRepo  repository.IReadMarkerRepository
	messageRepo repository.IMessageRepository
}

func NewReadService(markerRepo repository.IReadMarkerRepository, messageRepo repository.IMessageRepository) *ReadService {
	return &ReadService{
		markerRepo:  markerRepo,
		messageRepo: messageRepo,
	}
}

// MarkSeen upserts the user's marker for the channel. The value is stored
// as given; a client may regress its own marker.
func (s *ReadService) MarkSeen(ctx context.Context, username, channelName string, messageID int64) error {
	marker := &model.ReadMarker{
		Username:    username,
		ChannelName: channelName,
		LastSeenID:  messageID,
	}
	if err := s.markerRepo.Upsert(ctx, marker); err != nil {
		return storeErr(err)
	}
	return nil
}

// LastSeen returns the marker value, or 0 when the user never opened the
// channel.
func (s *ReadService) LastSeen(ctx context.Context, username, channelName string) (int64, error) {
	id, err := s.markerRepo.Get(ctx, username, channelName)
	if err != nil {
		return 0, storeErr(err)
	}
	return id, nil
}

// UnreadChannels returns every channel holding at least one message the
// user has not acknowledged, each name exactly once, unordered.
func (s *ReadService) UnreadChannels(ctx context.Context, username string) ([]string, error) {
	names, err := s.messageRepo.UnreadChannels(ctx, username)
	if err != nil {
		return nil, storeErr(err)
	}
	return names, nil
}
