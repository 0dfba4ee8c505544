package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/poofware/rental-service/internal/app"
	"github.com/poofware/rental-service/internal/config"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/spf13/cobra"
	_ "time/tzdata"
)

var rootCmd = &cobra.Command{
	Use:   "rental-service",
	Short: "Rental records API: agents, clients, apartments, buildings and contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()
		utils.Logger.Info("Migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo agent, client, apartment, building and contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer application.Close()
		return app.SeedTestData(cmd.Context(), application.Store)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	utils.InitLogger(config.AppName)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// open loads config, connects and migrates.
func open(ctx context.Context) (*app.App, error) {
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rental-service: %w", err)
	}
	if err := application.Migrate(ctx); err != nil {
		application.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return application, nil
}

func serve(ctx context.Context) error {
	application, err := open(ctx)
	if err != nil {
		return err
	}
	defer application.Close()
	cfg := application.Config

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(ctx, application.Store); err != nil {
			return fmt.Errorf("failed to seed test data: %w", err)
		}
	}

	handler := app.NewRouter(application)

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		return fmt.Errorf("rental-service failed to start: %w", err)
	}
	return nil
}
