package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/cryptotax/journal"
	"github.com/rustyeddy/cryptotax/market"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query exported sales in a SQLite journal",
	Long: `Query and display sale records from a SQLite journal written by export.

Subcommands:
  sale   - Get details of a specific sale by ID
  range  - List sales sold inside [from, to)

Bounds are either dates (YYYY-MM-DD, in the configured time zone) or full
timestamps ("2020-01-01 00:00:00+00:00").

Examples:
  cryptotax journal sale <sale-id>
  cryptotax journal range 2020-01-01 2021-01-01`,
}

var journalSaleCmd = &cobra.Command{
	Use:   "sale <sale-id>",
	Short: "Get details of a specific sale",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSale,
}

var journalRangeCmd = &cobra.Command{
	Use:   "range <from> <to>",
	Short: "List sales sold inside a time range",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalRange,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSaleCmd)
	journalCmd.AddCommand(journalRangeCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
}

func openJournalDB() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalSale(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetSale(args[0])
	if err != nil {
		return fmt.Errorf("get sale: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatSaleOrg(rec))
	return nil
}

func runJournalRange(cmd *cobra.Command, args []string) error {
	start, err := parseBound(args[0])
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	end, err := parseBound(args[1])
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}
	if _, err := market.NewWindow(start, end); err != nil {
		return err
	}

	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListSalesBetween(start, end)
	if err != nil {
		return fmt.Errorf("query sales: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatSalesOrg(recs))
	return nil
}

func parseBound(s string) (time.Time, error) {
	if t, err := market.ParseTime(s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, market.Location())
}
