package main

import (
	"database/sql"
	"encoding/json"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/service"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print today's KPI summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			var db *sql.DB
			if cfg.RecordSource == config.SourcePostgres {
				if db, err = openDB(cmd, cfg); err != nil {
					return err
				}
				defer db.Close()
			}

			records, err := recordStore(cfg, db, logger)
			if err != nil {
				return err
			}
			// Employees are not needed to compute KPIs
			svc, err := service.NewService(records, nil, logger, cfg)
			if err != nil {
				return err
			}

			summary, err := svc.TodaySummary(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}
