package cmd

import (
	"github.com/rustyeddy/cryptotax/market"
	"github.com/rustyeddy/cryptotax/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print trades, USD trades, sales, proceeds and holdings",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List the trades executed inside the window",
	Args:  cobra.NoArgs,
	RunE:  runTrades,
}

var usdTradesCmd = &cobra.Command{
	Use:   "usd-trades",
	Short: "Export the window's trades as bitcoin.tax style USD rows (CSV)",
	Args:  cobra.NoArgs,
	RunE:  runUSDTrades,
}

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "List realized sales, Form 8949 style",
	Long: `List every sale realized inside the window.

With --full each sale is followed by the SELL and BUY trades it came from,
including their notes.`,
	Args: cobra.NoArgs,
	RunE: runSales,
}

var proceedsCmd = &cobra.Command{
	Use:   "proceeds",
	Short: "Summarize long- and short-term proceeds per currency",
	Args:  cobra.NoArgs,
	RunE:  runProceeds,
}

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Show open lots left after the whole log",
	Args:  cobra.NoArgs,
	RunE:  runHoldings,
}

var (
	tradesNotes bool
	salesFull   bool
)

func init() {
	rootCmd.AddCommand(reportCmd, tradesCmd, usdTradesCmd, salesCmd, proceedsCmd, holdingsCmd)

	tradesCmd.Flags().BoolVar(&tradesNotes, "notes", false, "print trade notes")
	salesCmd.Flags().BoolVar(&salesFull, "full", false, "show SELL/BUY provenance for every sale")
}

func runReport(cmd *cobra.Command, args []string) error {
	e, w, err := loadLedger()
	if err != nil {
		return err
	}
	return report.WriteAll(cmd.OutOrStdout(), e, w)
}

func runTrades(cmd *cobra.Command, args []string) error {
	e, w, err := loadLedger()
	if err != nil {
		return err
	}
	return report.WriteTrades(cmd.OutOrStdout(), e.Trades(), w, tradesNotes)
}

func runUSDTrades(cmd *cobra.Command, args []string) error {
	e, w, err := loadLedger()
	if err != nil {
		return err
	}
	return report.WriteUSDTrades(cmd.OutOrStdout(), report.USDTrades(e.Trades()), w)
}

func runSales(cmd *cobra.Command, args []string) error {
	e, w, err := loadLedger()
	if err != nil {
		return err
	}
	return report.WriteSales(cmd.OutOrStdout(), e, w, salesFull)
}

func runProceeds(cmd *cobra.Command, args []string) error {
	e, w, err := loadLedger()
	if err != nil {
		return err
	}
	p, err := report.Aggregate(e.Sales(), w, market.Location())
	if err != nil {
		return err
	}
	return report.WriteProceeds(cmd.OutOrStdout(), p)
}

func runHoldings(cmd *cobra.Command, args []string) error {
	e, _, err := loadLedger()
	if err != nil {
		return err
	}
	return report.WriteHoldings(cmd.OutOrStdout(), e)
}
