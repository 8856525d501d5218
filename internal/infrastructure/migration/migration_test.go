package migration

import (
	"io"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/procureflow/procureflow/internal/infrastructure/persistence/models"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

func TestSplitGooseScript(t *testing.T) {
	raw := `-- +goose Up
-- +goose StatementBegin
CREATE TABLE a (id INT);
-- +goose StatementEnd

-- +goose Down
DROP TABLE a;
`
	up, down := splitGooseScript(raw)
	assert.Equal(t, "CREATE TABLE a (id INT);", up)
	assert.Equal(t, "DROP TABLE a;", down)
}

func TestParseScriptName(t *testing.T) {
	v, id, err := parseScriptName("00012_add_index.sql")
	require.NoError(t, err)
	assert.Equal(t, uint(12), v)
	assert.Equal(t, "add_index", id)

	_, _, err = parseScriptName("noversion.sql")
	assert.Error(t, err)
}

func TestGooseSource_Walk(t *testing.T) {
	fsys := fstest.MapFS{
		"00001_init.sql": {Data: []byte("-- +goose Up\nCREATE TABLE a (id INT);\n-- +goose Down\nDROP TABLE a;\n")},
		"00002_more.sql": {Data: []byte("-- +goose Up\nCREATE TABLE b (id INT);\n")},
		"README.md":      {Data: []byte("ignored")},
	}
	src, err := newGooseSource(fsys)
	require.NoError(t, err)

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	_, err = src.Next(next)
	assert.ErrorIs(t, err, os.ErrNotExist)

	r, identifier, err := src.ReadUp(2)
	require.NoError(t, err)
	body, _ := io.ReadAll(r)
	assert.Equal(t, "more", identifier)
	assert.Equal(t, "CREATE TABLE b (id INT);", string(body))

	_, _, err = src.ReadDown(2)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmbeddedScripts_BothDialects(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres"} {
		fsys, err := scriptsFor(driver)
		require.NoError(t, err)
		src, err := newGooseSource(fsys)
		require.NoError(t, err)

		r, _, err := src.ReadUp(1)
		require.NoError(t, err, driver)
		body, _ := io.ReadAll(r)
		for _, table := range []string{
			models.TableUsers, models.TableTickets, models.TableTicketReviewers,
			models.TableTicketSharedUsers, models.TableTicketStatusHistory, models.TableTicketComments,
			models.TableCanvassForms, models.TableCanvassAttachments, models.TableNotifications,
		} {
			assert.Contains(t, string(body), "CREATE TABLE "+table+" (", driver)
		}
	}

	_, err := scriptsFor("oracle")
	assert.Error(t, err)
}

func TestNewStrategy(t *testing.T) {
	log := logger.NewNopLogger()

	s, err := NewStrategy("", "postgres", log)
	require.NoError(t, err)
	assert.Equal(t, StrategyGoose, s.Name())

	s, err = NewStrategy(StrategyGolangMigrate, "mysql", log)
	require.NoError(t, err)
	assert.Equal(t, StrategyGolangMigrate, s.Name())

	_, err = NewStrategy("flyway", "mysql", log)
	assert.Error(t, err)
}

func TestAutoMigrateStrategy(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s := NewAutoMigrateStrategy(logger.NewNopLogger())
	require.NoError(t, s.Up(db))
	assert.True(t, db.Migrator().HasTable(models.TableCanvassAttachments))
	assert.Error(t, s.Down(db, 1))
}
