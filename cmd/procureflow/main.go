package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/procureflow/procureflow/internal/interfaces/cli/migrate"
	"github.com/procureflow/procureflow/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "procureflow",
		Short: "Procureflow - procurement ticket workflow",
		Long:  `Procureflow runs the procurement ticket API server and its database tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
