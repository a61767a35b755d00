// Package database owns the SQLite handle and the schema lifecycle.
//
// Schema evolution is destructive by policy: when the stamped schema version
// does not match the version this build expects, all tables are dropped and
// recreated from the embedded migrations, discarding existing data. The
// catalog reseeds afterwards because seeding is keyed on an empty table.
package database

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // pure Go sqlite driver for migrations
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "mensa/internal/errors"
	"mensa/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// schemaVersion is stamped into PRAGMA user_version after migrations run.
// Bump it when the schema changes shape; any database stamped with a
// different non-zero version is dropped and recreated on the next open.
const schemaVersion = 1

// Manager handles database operations
type Manager struct {
	db   *gorm.DB
	path string
}

// NewManager opens (or creates) the SQLite database at the given path.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, fmt.Errorf("creating database directory: %w", err))
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, fmt.Errorf("opening database: %w", err))
	}

	return &Manager{db: db, path: dbPath}, nil
}

// Migrate brings the schema to the current version. A fresh database gets
// the tables created; a database stamped with a stale version is dropped and
// recreated per the destructive evolution policy.
func (m *Manager) Migrate() error {
	stamped, err := m.userVersion()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	if stamped != 0 && stamped != schemaVersion {
		logger.Get().Warnw("schema version mismatch, recreating database",
			"stamped", stamped,
			"expected", schemaVersion,
		)
		if err := m.dropAll(); err != nil {
			return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
		}
	}

	if err := m.migrateUp(); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	if err := m.stampVersion(); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// Reset drops and recreates the schema unconditionally, discarding all data.
func (m *Manager) Reset() error {
	if err := m.dropAll(); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	if err := m.migrateUp(); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	if err := m.stampVersion(); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// SchemaVersion returns the version stamped on the open database.
func (m *Manager) SchemaVersion() (int, error) {
	return m.userVersion()
}

// Close closes the underlying connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newMigrator builds a fresh migrate instance over the embedded SQL files.
// Instances are single-use: after Drop the version table is gone and the
// same instance cannot run Up, so callers create one per step.
func (m *Manager) newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("loading embedded migrations: %w", err)
	}
	mig, err := migrate.NewWithSourceInstance("iofs", src, fmt.Sprintf("sqlite://%s", m.path))
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}
	return mig, nil
}

func (m *Manager) migrateUp() error {
	mig, err := m.newMigrator()
	if err != nil {
		return err
	}
	defer closeMigrator(mig)

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

func (m *Manager) dropAll() error {
	mig, err := m.newMigrator()
	if err != nil {
		return err
	}
	defer closeMigrator(mig)

	if err := mig.Drop(); err != nil {
		return fmt.Errorf("dropping schema: %w", err)
	}
	return nil
}

func (m *Manager) userVersion() (int, error) {
	var version int
	if err := m.db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("reading user_version: %w", err)
	}
	return version, nil
}

func (m *Manager) stampVersion() error {
	// PRAGMA does not accept bound parameters.
	if err := m.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)).Error; err != nil {
		return fmt.Errorf("stamping user_version: %w", err)
	}
	return nil
}

func closeMigrator(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}
