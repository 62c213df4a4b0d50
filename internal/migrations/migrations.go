package migrations

import (
	"keepwise-be/internal/model"
	"keepwise-be/pkg/database"

	"gorm.io/gorm"
)

// All returns the ordered schema history for the relational note store.
// Version 2 is the historical "add user_id" step that used to be
// feature-detected at boot; it is a no-op on schemas created at version 1
// or later but kept so old single-user databases upgrade cleanly.
func All() []database.Migration {
	return []database.Migration{
		{
			Version: 1,
			Name:    "create_notes_table",
			Migrate: func(db *gorm.DB) error {
				return db.AutoMigrate(&model.Note{})
			},
		},
		{
			Version: 2,
			Name:    "backfill_anonymous_user_id",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`UPDATE notes SET user_id = 'anonymous' WHERE user_id IS NULL OR user_id = ''`).Error
			},
		},
	}
}

// Run applies the full schema history. Called at store initialization and by
// cmd/migrate.
func Run(db *gorm.DB) error {
	return database.RunMigrations(db, All())
}
