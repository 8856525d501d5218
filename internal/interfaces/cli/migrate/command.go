package migrate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/procureflow/procureflow/internal/infrastructure/auth"
	"github.com/procureflow/procureflow/internal/infrastructure/config"
	"github.com/procureflow/procureflow/internal/infrastructure/database"
	"github.com/procureflow/procureflow/internal/infrastructure/migration"
	"github.com/procureflow/procureflow/internal/infrastructure/repository"
	"github.com/procureflow/procureflow/internal/infrastructure/seed"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

const defaultScriptsRoot = "./internal/infrastructure/migration/scripts"

var (
	strategyName string
	name         string
	steps        int
	seedFile     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, creating new migration files and seeding accounts.`,
	}

	cmd.PersistentFlags().StringVarP(&strategyName, "strategy", "s", migration.StrategyGoose,
		"Migration strategy (goose, golang_migrate, gorm_auto_migrate)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new goose migration file",
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create initial user accounts from a YAML file",
		Long:  `Create the accounts listed in the seed file. Accounts whose email already exists are skipped.`,
		RunE:  runSeed,
	}
	cmd.Flags().StringVarP(&seedFile, "file", "f", "./configs/users.yaml", "Path to the users seed file")
	return cmd
}

func initEnv(connect bool) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if connect {
		if err := database.Init(&cfg.Database, cfg.Server.IsDebug()); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return cfg, log, nil
}

func closeDatabase(log logger.Interface) {
	if err := database.Close(); err != nil {
		log.Warnw("failed to close database", "error", err)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	strategy, err := migration.NewStrategy(strategyName, cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	log.Infow("running up migrations", "strategy", strategy.Name(), "driver", cfg.Database.Driver)
	if err := strategy.Up(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	strategy, err := migration.NewStrategy(strategyName, cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	log.Infow("running down migrations", "strategy", strategy.Name(), "steps", steps)
	if err := strategy.Down(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	strategy, err := migration.NewStrategy(strategyName, cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	version, dirty, err := strategy.Version(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Strategy:        %s\n", strategy.Name())
	fmt.Fprintf(out, "  Driver:          %s\n", cfg.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", version)
	fmt.Fprintf(out, "  Dirty:           %t\n", dirty)

	if goose, ok := strategy.(*migration.GooseStrategy); ok {
		if err := goose.Status(database.Get()); err != nil {
			return fmt.Errorf("failed to get detailed status: %w", err)
		}
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(false)
	if err != nil {
		return err
	}

	scriptsRoot, err := filepath.Abs(defaultScriptsRoot)
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}

	goose, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}
	if err := goose.Create(scriptsRoot, name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created\n", name)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	file, err := seed.LoadUsersFile(seedFile)
	if err != nil {
		return err
	}

	seeder := seed.NewUserSeeder(
		repository.NewUserRepository(database.Get()),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		log,
	)

	res, err := seeder.Seed(context.Background(), file)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded users: %d created, %d skipped\n", res.Created, res.Skipped)
	return nil
}
