package migration

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/procureflow/procureflow/internal/shared/config"
)

//go:embed scripts/mysql/*.sql scripts/postgres/*.sql
var embeddedScripts embed.FS

// ScriptsDir is where `migrate create` writes new files, relative to the
// repository root.
const ScriptsDir = "internal/infrastructure/migration/scripts"

// scriptsFor returns the script tree for a database driver.
func scriptsFor(driver string) (fs.FS, error) {
	dir, err := dialectDir(driver)
	if err != nil {
		return nil, err
	}
	return fs.Sub(embeddedScripts, "scripts/"+dir)
}

func dialectDir(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case config.DriverMySQL, "":
		return "mysql", nil
	case config.DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
