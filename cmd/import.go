package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/urbanatlas/gtfsdb"
)

var importCmd = &cobra.Command{
	Use:   "import [feed-dir]",
	Short: "Imports one or more GTFS feeds",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImport,
}

var (
	importConfig  string
	importAgency  string
	importExclude []string
)

func init() {
	importCmd.Flags().StringVarP(&importConfig, "config", "c", "", "YAML config listing agencies to import")
	importCmd.Flags().StringVarP(&importAgency, "agency", "a", "", "agency key for the imported feed")
	importCmd.Flags().StringSliceVarP(&importExclude, "exclude", "", []string{}, "tables to skip")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var agencies []gtfsdb.AgencyConfig

	if importConfig != "" {
		cfg, err := loadConfig(importConfig)
		if err != nil {
			return err
		}
		for _, a := range cfg.Agencies {
			agencies = append(agencies, gtfsdb.AgencyConfig{
				AgencyKey: a.AgencyKey,
				Path:      a.Path,
				Exclude:   a.Exclude,
			})
		}
	} else {
		if len(args) != 1 || importAgency == "" {
			return fmt.Errorf("either --config or a feed dir and --agency is required")
		}
		agencies = append(agencies, gtfsdb.AgencyConfig{
			AgencyKey: importAgency,
			Path:      args[0],
			Exclude:   importExclude,
		})
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, agency := range agencies {
		summary, err := store.Import(agency)
		if err != nil {
			return fmt.Errorf("importing %s: %w", agency.AgencyKey, err)
		}

		for _, warning := range summary.Warnings {
			logger.Warn("row dropped", "agency", agency.AgencyKey, "warning", warning)
		}
		for table, n := range summary.RowCounts {
			logger.Info("imported", "agency", agency.AgencyKey, "table", table, "rows", n)
		}
	}

	return nil
}
