package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"messaging-backend/internal/model"
	"messaging-backend/internal/storage"
)

// newTestDB opens an in-memory store with the production schema, General
// channel included. Pool is pinned to one connection so every query sees
// the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{
		Username: username,
		Password: "hash",
		Role:     role,
	}).Error)
}

func seedChannel(t *testing.T, db *gorm.DB, name, channelType string, members ...string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Channel{Name: name, Type: channelType}).Error)
	for _, member := range members {
		require.NoError(t, db.Create(&model.Membership{
			Username:    member,
			ChannelName: name,
		}).Error)
	}
}
