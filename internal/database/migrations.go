package database

import (
	"audora/internal/logger"
	"audora/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Audio{},
		&models.Favorite{},
		&models.History{},
		&models.Playlist{},
		&models.EmailVerificationToken{},
		&models.PasswordResetToken{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			log.Error("Failed to migrate model", "model", model, "error", err)
			return err
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_audios_owner_created_at ON audios(owner_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_playlists_owner_visibility ON playlists(owner_id, visibility)",
		"CREATE INDEX IF NOT EXISTS idx_playlists_owner_created_at ON playlists(owner_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.SQL.Exec(index).Error; err != nil {
			log.Error("Failed to create index", "sql", index, "error", err)
			return err
		}
	}

	log.Info("Database indexes created successfully")
	return nil
}
