package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/pkg/refdata"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [table]",
	Short: "Refresh reference tables from their sources",
	Long: `Fetches the configured sources, rebuilds the reference tables and
publishes them to the KV store. Without an argument all refreshable
tables are updated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	if app.rdb == nil {
		return fmt.Errorf("refresh requires a reachable KV store")
	}

	tables := []string{refdata.TableDisposable}
	if len(args) == 1 {
		tables = []string{args[0]}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, table := range tables {
		report, err := app.ref.Refresh(ctx, table)
		if err != nil {
			return fmt.Errorf("refreshing %s: %w", table, err)
		}
		fmt.Printf("%s: fetched=%d added=%d removed=%d total=%d in %s\n",
			report.Table, report.Fetched, report.Added, report.Removed,
			report.Total, report.Duration.Round(time.Millisecond))
	}
	return nil
}
