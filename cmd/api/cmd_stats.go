package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/progress-tracker/config"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/bootstrap"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/repository"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print project and progress totals as JSON",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := bootstrap.OpenStore(cmd.Context(), &cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	st, err := repository.NewProjectRepository(db).Stats(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}
