package main

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <agency-key> <dest-dir>",
	Short: "Writes an agency's dataset back to GTFS CSV files",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Export(args[0], args[1]); err != nil {
		return err
	}

	logger.Info("exported", "agency", args[0], "dir", args[1])
	return nil
}
