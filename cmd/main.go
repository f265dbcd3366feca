package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/urbanatlas/gtfsdb"
)

var rootCmd = &cobra.Command{
	Use:          "gtfsdb",
	Short:        "GTFS ingestion and query tool",
	Long:         "Imports GTFS feeds into a relational store and queries them",
	SilenceUsage: true,
}

var (
	dbBackend string
	dbPath    string
	dbConnStr string

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbBackend, "backend", "", "sqlite", "storage backend (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "", "", "SQLite database path (blank for in-memory)")
	rootCmd.PersistentFlags().StringVarP(&dbConnStr, "conn", "", "", "Postgres connection string")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openStore() (*gtfsdb.Store, error) {
	return gtfsdb.Open(gtfsdb.Config{
		Backend: dbBackend,
		Path:    dbPath,
		ConnStr: dbConnStr,
	})
}
