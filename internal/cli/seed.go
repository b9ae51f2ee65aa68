package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/config"
	"globetrotter-service/internal/domain"
	pginfra "globetrotter-service/internal/infra/postgres"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewSeedCmd imports a destination dataset from a JSON file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dataset.json>",
		Short: "Import destinations from a JSON dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd, cfg, args[0])
		},
	}
}

func runSeed(cmd *cobra.Command, cfg config.Config, datasetPath string) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
		return err
	}

	data, err := os.ReadFile(datasetPath)
	if err != nil {
		return err
	}
	var destinations []domain.Destination
	if err := json.Unmarshal(data, &destinations); err != nil {
		return fmt.Errorf("decode dataset: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	service := app.NewDestinationService(pginfra.NewDestinationRepo(db))
	imported, err := service.ImportMany(cmd.Context(), destinations)
	if err != nil {
		return err
	}
	log.Printf("imported %d destinations", len(imported))
	return nil
}
