package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"messaging-backend/internal/model"
)

// InitPostgres opens the PostgreSQL connection, configures the pool,
// migrates the schema and seeds the well-known General channel so the
// default membership created at registration always has a target.
func InitPostgres(dsn string, maxIdleConns, maxOpenConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema and seeds the General channel. Shared with
// tests, which run it against an in-memory store.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Channel{},
		&model.Membership{},
		&model.Message{},
		&model.ReadMarker{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	general := &model.Channel{Name: model.GeneralChannel, Type: model.ChannelPublic}
	if err := db.Where("name = ?", general.Name).FirstOrCreate(general).Error; err != nil {
		return fmt.Errorf("failed to seed general channel: %w", err)
	}
	return nil
}

// BuildDSN builds a PostgreSQL DSN from the config fields.
func BuildDSN(host, port, user, password, dbname string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)
}
