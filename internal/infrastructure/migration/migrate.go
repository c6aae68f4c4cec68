package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/migrations"
)

// Migrator applies the schema migrations with golang-migrate
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// New creates a Migrator over db using the migrations compiled into the binary
func New(db *sql.DB, logger *zap.Logger) (*Migrator, error) {
	return NewWithSource(db, migrations.FS, logger)
}

// NewWithSource creates a Migrator reading *.sql pairs from the root of src
func NewWithSource(db *sql.DB, src fs.FS, logger *zap.Logger) (*Migrator, error) {
	source, err := iofs.New(src, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// NewFromPath creates a Migrator reading migrations from a directory on disk,
// used while authoring migrations that are not yet compiled in
func NewFromPath(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migrations completed", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations (positive = up, negative = down)
func (m *Migrator) Steps(n int) error {
	err := m.migrate.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration steps failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migration steps completed", zap.Int("steps", n), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	err := m.migrate.Migrate(version)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Already at target version", zap.Uint("version", version))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}
	m.logger.Info("Migration to version completed", zap.Uint("version", version))
	return nil
}

// Version returns the current migration version; 0 when none is applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the recorded version without running migrations.
// It is the way out of a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}
