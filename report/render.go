package report

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/cryptotax/ledger"
	"github.com/rustyeddy/cryptotax/market"
	"github.com/rustyeddy/cryptotax/trade"
)

// Source is the read side of a processed ledger.
type Source interface {
	Trades() []trade.Trade
	Trade(idx int) (trade.Trade, bool)
	Sales() []ledger.Sale
	Holdings() ledger.Holdings
}

// DefaultWindow spans the whole days of the first and last trade. It fails
// when there are no trades to anchor it.
func DefaultWindow(trades []trade.Trade, from, to *time.Time) (market.Window, error) {
	if (from == nil || to == nil) && len(trades) == 0 {
		return market.Window{}, fmt.Errorf("no trades to derive the report window from")
	}
	var w market.Window
	if from != nil {
		w.From = *from
	} else {
		w.From = market.StartOfDay(trades[0].Time)
	}
	if to != nil {
		w.To = *to
	} else {
		w.To = market.EndOfDay(trades[len(trades)-1].Time)
	}
	return w, w.Validate()
}

// WriteTrades lists the trades executed inside w.
func WriteTrades(out io.Writer, trades []trade.Trade, w market.Window, withNotes bool) error {
	for _, t := range trades {
		if !w.Contains(t.Time) {
			continue
		}
		if _, err := fmt.Fprintln(out, t); err != nil {
			return err
		}
		if withNotes {
			if err := writeNotes(out, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSales lists the sales realized inside w. With full set every sale is
// followed by the SELL and BUY trades it came from.
func WriteSales(out io.Writer, src Source, w market.Window, full bool) error {
	sales := src.Sales()
	for i, s := range sales {
		if !w.Contains(s.SellTime) {
			continue
		}
		if _, err := fmt.Fprintln(out, s); err != nil {
			return err
		}
		if !full {
			continue
		}
		for _, leg := range []struct {
			label string
			idx   int
		}{{"SELL", s.SellTradeIdx}, {"BUY", s.BuyTradeIdx}} {
			t, ok := src.Trade(leg.idx)
			if !ok {
				return fmt.Errorf("sale %d: unknown %s trade %d", i, leg.label, leg.idx)
			}
			if _, err := fmt.Fprintf(out, "- %s: %s\n", leg.label, t); err != nil {
				return err
			}
			if err := writeNotes(out, t); err != nil {
				return err
			}
		}
		if i+1 < len(sales) {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteProceeds prints the LONG then SHORT term buckets.
func WriteProceeds(out io.Writer, p Proceeds) error {
	buckets := []struct {
		label string
		b     Bucket
	}{{"LONG", p.LongTerm}, {"SHORT", p.ShortTerm}}

	for i, bk := range buckets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Target period %s-TERM gains:\n", bk.label)
		for _, cur := range bk.b.Currencies() {
			t := bk.b.ByCurrency[cur]
			fmt.Fprintf(out, "- %s: volume=%s proceeds=%s cost_basis=%s gains=%s\n",
				cur, market.Fixed(t.Volume), market.Fixed(t.Proceeds),
				market.Fixed(t.CostBasis), market.Fixed(t.Gain))
		}
		t := bk.b.Total
		if _, err := fmt.Fprintf(out, "total_volume=%s total_proceeds=%s total_cost_basis=%s total_gains=%s\n",
			market.Fixed(t.Volume), market.Fixed(t.Proceeds),
			market.Fixed(t.CostBasis), market.Fixed(t.Gain)); err != nil {
			return err
		}
	}
	return nil
}

// WriteHoldings prints every open position followed by its lots.
func WriteHoldings(out io.Writer, src Source) error {
	for _, h := range Snapshot(src.Holdings()) {
		if _, err := fmt.Fprintf(out, "%s: volume=%s, cost_basis=%s, avg_cost=%s\n",
			h.Currency, market.Fixed(h.TotalVolume), market.Fixed(h.TotalCostBasis),
			market.Fixed(h.AverageCost)); err != nil {
			return err
		}
		for _, l := range h.Lots {
			t, ok := src.Trade(l.TradeIdx)
			if !ok {
				return fmt.Errorf("%s lot: unknown trade %d", h.Currency, l.TradeIdx)
			}
			if _, err := fmt.Fprintf(out, "  - %s %s (cost_basis=%s, price=%s, %s)\n",
				market.Fixed(l.Volume), t.CurrencyTo, market.Fixed(l.CostBasis),
				market.Fixed(t.PriceToUSD), market.FormatTime(t.Time)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteAll prints the full report: trades, USD legs, sales, proceeds and
// holdings, each section separated by a blank line.
func WriteAll(out io.Writer, src Source, w market.Window) error {
	trades := src.Trades()
	proceeds, err := Aggregate(src.Sales(), w, market.Location())
	if err != nil {
		return err
	}

	sections := []func() error{
		func() error { return WriteTrades(out, trades, w, true) },
		func() error { return WriteUSDTrades(out, USDTrades(trades), w) },
		func() error { return WriteSales(out, src, w, true) },
		func() error { return WriteProceeds(out, proceeds) },
		func() error { return WriteHoldings(out, src) },
	}
	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if err := section(); err != nil {
			return err
		}
	}
	return nil
}

func writeNotes(out io.Writer, t trade.Trade) error {
	for _, n := range t.Notes {
		if _, err := fmt.Fprintln(out, trade.NotePrefix+n); err != nil {
			return err
		}
	}
	return nil
}
