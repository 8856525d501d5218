package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// AutoMigrateStrategy lets gorm derive the schema from the models. Meant for
// local development; it never drops anything.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) Name() string {
	return StrategyAutoMigrate
}

func (s *AutoMigrateStrategy) Up(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("running gorm auto migrate", "models_count", len(all))
	if err := db.AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migrate failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *AutoMigrateStrategy) Down(*gorm.DB, int) error {
	return fmt.Errorf("down migration is not supported by %s", StrategyAutoMigrate)
}

func (s *AutoMigrateStrategy) Version(*gorm.DB) (int64, bool, error) {
	return 0, false, nil
}
