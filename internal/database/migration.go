package database

import (
	"fmt"

	"github.com/SYAAGalib/money-flow/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Category names are unique per owner, case-insensitively. A plain
	// composite unique index cannot cover the ownerless default rows
	// (NULLs never collide in SQLite), so two partial indexes carry the
	// constraint. get_or_create style seeding relies on these under
	// concurrent registrations.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_user_name
			ON categories (user_id, lower(name)) WHERE user_id IS NOT NULL;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_default_name
			ON categories (lower(name)) WHERE user_id IS NULL;`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
