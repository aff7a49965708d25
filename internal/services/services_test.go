package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"messaging-backend/internal/model"
	"messaging-backend/internal/repository"
	"messaging-backend/internal/storage"
	logger "messaging-backend/middleware/log"
)

type testEnv struct {
	db       *gorm.DB
	channels repository.IChannelRepository
	messages repository.IMessageRepository
	markers  repository.IReadMarkerRepository

	authz          *AuthzService
	userService    *UserService
	channelService *ChannelService
	messageService *MessageService
	readService    *ReadService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, storage.Migrate(db))

	zlog, err := logger.NewDevelopmentLogger()
	require.NoError(t, err)
	t.Cleanup(func() { _ = zlog.Sync() })

	userRepo := repository.NewUserRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	markerRepo := repository.NewReadMarkerRepository(db)

	authz := NewAuthzService(userRepo, channelRepo)
	return &testEnv{
		db:             db,
		channels:       channelRepo,
		messages:       messageRepo,
		markers:        markerRepo,
		authz:          authz,
		userService:    NewUserService(userRepo, authz),
		channelService: NewChannelService(channelRepo, messageRepo, markerRepo, authz),
		messageService: NewMessageService(messageRepo, authz, nil, zlog),
		readService:    NewReadService(markerRepo, messageRepo),
	}
}

func (env *testEnv) register(t *testing.T, username, role string) {
	t.Helper()
	require.NoError(t, env.userService.Register(t.Context(), username, "password123", role))
}

// capturePublisher records published events, or fails every publish.
type capturePublisher struct {
	events []*model.Message
	fail   bool
}

func (p *capturePublisher) MessageSent(_ context.Context, message *model.Message) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, message)
	return nil
}
