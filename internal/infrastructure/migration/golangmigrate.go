package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/shared/logger"
)

// GolangMigrateStrategy runs the same annotated scripts as goose through
// golang-migrate, for deployments that already track schema_migrations.
type GolangMigrateStrategy struct {
	dialect string
	logger  logger.Interface
}

func NewGolangMigrateStrategy(driver string, log logger.Interface) (*GolangMigrateStrategy, error) {
	dialect, err := dialectDir(driver)
	if err != nil {
		return nil, err
	}
	return &GolangMigrateStrategy{
		dialect: dialect,
		logger:  log.With("component", "migration.golang-migrate"),
	}, nil
}

func (s *GolangMigrateStrategy) Name() string {
	return StrategyGolangMigrate
}

func (s *GolangMigrateStrategy) Up(db *gorm.DB) error {
	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		s.logger.Errorw("failed to get current migration version", "error", err)
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually", "version", currentVersion)
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}
	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) Down(db *gorm.DB, steps int) error {
	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	s.logger.Infow("starting down migration", "steps", steps)
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}
	return nil
}

func (s *GolangMigrateStrategy) Version(db *gorm.DB) (int64, bool, error) {
	m, err := s.open(db)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return int64(version), dirty, nil
}

// Force sets the recorded version and clears the dirty flag.
func (s *GolangMigrateStrategy) Force(db *gorm.DB, version int) error {
	m, err := s.open(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		s.logger.Errorw("force migration failed", "error", err)
		return fmt.Errorf("failed to force version: %w", err)
	}
	s.logger.Infow("forced migration version", "version", version)
	return nil
}

func (s *GolangMigrateStrategy) open(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	fsys, err := scriptsFor(s.dialect)
	if err != nil {
		return nil, err
	}
	src, err := newGooseSource(fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load migration scripts: %w", err)
	}

	driver, err := s.databaseDriver(sqlDB)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance(gooseSourceName, src, s.dialect, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func (s *GolangMigrateStrategy) databaseDriver(sqlDB *sql.DB) (database.Driver, error) {
	switch s.dialect {
	case "postgres":
		driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{MultiStatementEnabled: true})
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres driver: %w", err)
		}
		return driver, nil
	default:
		driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
		}
		return driver, nil
	}
}
