// Package ledger implements FIFO tax-lot matching over a chronological trade
// log: disposals drain the oldest open lots of a currency, acquisitions append
// new ones, and every lot consumed yields one realized Sale.
package ledger

import (
	"errors"
	"fmt"
	"io"

	"github.com/rustyeddy/cryptotax/market"
	"github.com/rustyeddy/cryptotax/trade"
	"github.com/sirupsen/logrus"
)

// EPS is the volume tolerance used for every "fully consumed" and
// "disposal done" decision.
const EPS = 1e-5

var (
	// ErrInsufficientHoldings is wrapped by InsufficientHoldingsError.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrHalted is returned by Process once an earlier trade has failed.
	ErrHalted = errors.New("engine halted after an earlier failure")
)

// InsufficientHoldingsError reports a disposal the open lots cannot cover.
type InsufficientHoldingsError struct {
	TradeIdx  int
	Currency  market.Currency
	Requested float64
	Available float64
}

func (e *InsufficientHoldingsError) Shortfall() float64 {
	return e.Requested - e.Available
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("trade %d: %v: selling %s %s, holding %s (short %s)",
		e.TradeIdx, ErrInsufficientHoldings,
		market.Fixed(e.Requested), e.Currency,
		market.Fixed(e.Available), market.Fixed(e.Shortfall()))
}

func (e *InsufficientHoldingsError) Unwrap() error { return ErrInsufficientHoldings }

// Engine owns the trade history, the open holdings and the realized sales of
// one run. It is not safe for concurrent use; read the snapshots only after
// the last Process call.
type Engine struct {
	trades   []trade.Trade
	sales    []Sale
	holdings Holdings
	log      logrus.FieldLogger
	err      error
}

type Option func(*Engine)

// WithLogger routes engine warnings (negative fees) to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(opts ...Option) *Engine {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	e := &Engine{
		holdings: make(Holdings),
		log:      quiet,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process applies one trade. Trades must arrive in chronological order; the
// engine never looks ahead. A disposal the holdings cannot cover fails before
// anything is mutated and halts the engine.
func (e *Engine) Process(t trade.Trade) error {
	if e.err != nil {
		return fmt.Errorf("%w: %v", ErrHalted, e.err)
	}

	idx := len(e.trades)
	if fee := t.FeesUSD(); fee < 0 {
		e.log.WithFields(logrus.Fields{
			"trade":    idx,
			"from":     t.CurrencyFrom,
			"to":       t.CurrencyTo,
			"fees_usd": fee,
		}).Warn("negative fee, trade log may be malformed")
	}

	if t.IsDisposal() {
		if err := e.dispose(t, idx); err != nil {
			e.err = err
			return err
		}
	}
	if t.IsAcquisition() {
		e.acquire(t, idx)
	}

	e.trades = append(e.trades, t)
	return nil
}

// ProcessAll feeds trades in order and stops at the first failure.
func (e *Engine) ProcessAll(trades []trade.Trade) error {
	for _, t := range trades {
		if err := e.Process(t); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) dispose(sell trade.Trade, sellIdx int) error {
	cur := sell.CurrencyFrom
	if avail := e.holdings.Volume(cur); sell.VolumeFrom > avail+EPS {
		return &InsufficientHoldingsError{
			TradeIdx:  sellIdx,
			Currency:  cur,
			Requested: sell.VolumeFrom,
			Available: avail,
		}
	}

	remaining := sell.VolumeFrom
	for remaining > EPS {
		lots := e.holdings[cur]
		if len(lots) == 0 {
			// Only reachable through residue beyond EPS accumulated over many lots.
			break
		}
		lot := &lots[0]
		buyIdx := lot.TradeIdx

		var sold, basis float64
		if lot.Volume > remaining+EPS {
			sold = remaining
			basis = lot.CostBasis * (remaining / lot.Volume)
			lot.Volume -= sold
			lot.CostBasis -= basis
		} else {
			sold = lot.Volume
			basis = lot.CostBasis
			e.holdings.popFront(cur)
		}

		e.sales = append(e.sales, newSale(sold, basis, e.trades[buyIdx], sell, buyIdx, sellIdx))
		remaining -= sold
	}
	return nil
}

func (e *Engine) acquire(buy trade.Trade, idx int) {
	e.holdings.push(buy.CurrencyTo, Lot{
		Volume:    buy.VolumeTo,
		CostBasis: buy.VolumeTo*buy.PriceToUSD + buy.FeesUSD(),
		TradeIdx:  idx,
	})
}

// Err returns the failure that halted the engine, if any.
func (e *Engine) Err() error { return e.err }

// Trades returns the processed trades; a trade's index is its position.
func (e *Engine) Trades() []trade.Trade {
	return append([]trade.Trade(nil), e.trades...)
}

// Trade returns the trade at idx.
func (e *Engine) Trade(idx int) (trade.Trade, bool) {
	if idx < 0 || idx >= len(e.trades) {
		return trade.Trade{}, false
	}
	return e.trades[idx], true
}

// Sales returns every realized sale in the order it was produced.
func (e *Engine) Sales() []Sale {
	return append([]Sale(nil), e.sales...)
}

// Holdings returns a copy of the open lots.
func (e *Engine) Holdings() Holdings {
	return e.holdings.Clone()
}
