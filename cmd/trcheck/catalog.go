package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gfmartins/trcheck/internal/common"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the cached reference catalog",
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the catalog now and replace the cached snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()
		cfg := common.LoadConfig()
		if catalogPath != "" {
			cfg.Catalog.FilePath = catalogPath
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		loader, store, err := buildLoader(cmd, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		cat, err := loader.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("catalog refreshed: %d entries (fetched %s)\n", cat.Len(), cat.FetchedAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

func init() {
	catalogRefreshCmd.Flags().StringVar(&catalogPath, "catalog", "", "local catalog file (overrides CATALOG_URL)")
	catalogCmd.AddCommand(catalogRefreshCmd)
}
