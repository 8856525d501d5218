package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/procureflow/procureflow/internal/shared/logger"
)

const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang_migrate"
	StrategyAutoMigrate   = "gorm_auto_migrate"
)

// Strategy applies and rolls back schema changes.
type Strategy interface {
	Name() string
	Up(db *gorm.DB) error
	Down(db *gorm.DB, steps int) error
	Version(db *gorm.DB) (version int64, dirty bool, err error)
}

// NewStrategy picks a strategy by name for the given database driver.
func NewStrategy(name, driver string, log logger.Interface) (Strategy, error) {
	switch name {
	case StrategyGoose, "":
		return NewGooseStrategy(driver, log)
	case StrategyGolangMigrate:
		return NewGolangMigrateStrategy(driver, log)
	case StrategyAutoMigrate:
		return NewAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy: %s", name)
	}
}
