package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Apurer/sales-backoffice/internal/app/wiring"
	triagemapper "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/http/mapper"
	backofficeworkflows "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/workflows"
	"github.com/Apurer/sales-backoffice/internal/platform/migrations"
	platformpostgres "github.com/Apurer/sales-backoffice/internal/platform/postgres"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a triage sweep against the back-office database",
		Long: `Classifies every stored sale, opens follow-up tasks for HIGH priority sales that
have none, and records the sweep. Runs inline, without Temporal.`,
		RunE: runSweep,
	}
	cmd.Flags().String("postgres-dsn", "", "PostgreSQL DSN (env TRIAGECTL_POSTGRES_DSN)")
	cmd.Flags().String("as-of", "", "RFC3339 instant to classify against (default: now)")
	_ = viper.BindPFlag("postgres.dsn", cmd.Flags().Lookup("postgres-dsn"))
	_ = viper.BindPFlag("sweep.as_of", cmd.Flags().Lookup("as-of"))
	return cmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dsn := viper.GetString("postgres.dsn")
	if dsn == "" {
		return errors.New("--postgres-dsn is required")
	}
	asOf, err := parseAsOf(viper.GetString("sweep.as_of"))
	if err != nil {
		return err
	}

	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sqlDB.Close(); closeErr != nil {
			slog.Error("failed to close database", slog.String("error", closeErr.Error()))
		}
	}()
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	services := wiring.Build(db, wiring.Options{Logger: slog.Default()})
	result, err := backofficeworkflows.NewInlineSweeps(services.Backoffice).RunSweep(ctx, asOf)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	slog.Info("sweep completed", slog.String("sweepId", result.ID), slog.Int("opened", len(result.Opened)))
	return writeJSON(cmd.OutOrStdout(), triagemapper.FromSweep(result))
}
