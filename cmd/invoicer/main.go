package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/app"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "invoicer",
		Short:         "Multi-tenant client and invoice API",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Migrate(cmd.Context(), app.LoadConfig())
		},
	}

	root.AddCommand(serveCmd, migrateCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	application, err := app.New(cmd.Context(), app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(cmd.Context())
}
