package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/members-api/go-api-server/internal/config"
	"github.com/members-api/go-api-server/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate executes database migration based on configuration
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("database migration disabled",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	slog.Warn("database migration starting - all tables will be dropped and recreated",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	// Safety check: prevent accidental data loss in production
	if cfg.App.Env == "prod" || cfg.App.Env == "production" {
		return fmt.Errorf("DB_AUTO_MIGRATE=true is not allowed in production")
	}

	// Step 1: drop existing tables
	slog.Info("dropping existing tables")

	// Order matters: drop in reverse dependency order (FK constraints)
	tableNames := []string{"member", "api_user"}

	for _, tableName := range tableNames {
		// Check if table exists (Oracle)
		var count int64
		db.Raw("SELECT COUNT(*) FROM USER_TABLES WHERE UPPER(TABLE_NAME) = UPPER(?)", tableName).Scan(&count)

		if count > 0 {
			dropSQL := fmt.Sprintf("DROP TABLE %s CASCADE CONSTRAINTS", tableName)
			if err := db.Exec(dropSQL).Error; err != nil {
				slog.Debug("failed to drop table", "table", tableName, "error", err)
			} else {
				slog.Debug("table dropped", "table", tableName)
			}
		}
	}

	// Step 2: create tables with IDENTITY columns
	slog.Info("creating tables")
	if err := runAutoMigrate(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	// Step 3: seed the bootstrap credential user if configured
	if err := seedCredentialUser(db, cfg); err != nil {
		return fmt.Errorf("failed to seed credential user: %w", err)
	}

	slog.Info("migration complete")
	return nil
}

// runAutoMigrate creates tables based on model definitions
func runAutoMigrate(db *gorm.DB) error {
	// Create in dependency order (FK references last)
	models := []interface{}{
		// Independent tables (no foreign keys)
		&model.User{},
		&model.Member{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migration of %T failed: %w", m, err)
		}
		slog.Debug("table created", "model", fmt.Sprintf("%T", m))
	}

	return nil
}

// seedCredentialUser creates the configured bootstrap user so a fresh
// deployment has working /auth credentials. No-op when unconfigured or the
// user already exists.
func seedCredentialUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.Auth.SeedUsername == "" {
		return nil
	}

	var existing model.User
	err := db.Where("username = ?", cfg.Auth.SeedUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	if err := db.Create(model.NewUser(cfg.Auth.SeedUsername, string(hash))).Error; err != nil {
		return err
	}

	slog.Info("seed credential user created", "username", cfg.Auth.SeedUsername)
	return nil
}
