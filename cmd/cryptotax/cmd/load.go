package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/cryptotax/ledger"
	"github.com/rustyeddy/cryptotax/market"
	"github.com/rustyeddy/cryptotax/report"
	"github.com/rustyeddy/cryptotax/trade"
	"github.com/sirupsen/logrus"
)

// loadLedger reads the configured trade log, runs it through a fresh engine
// and resolves the report window.
func loadLedger() (*ledger.Engine, market.Window, error) {
	f, err := os.Open(cfg.InputFile)
	if err != nil {
		return nil, market.Window{}, fmt.Errorf("open trade log: %w", err)
	}
	defer f.Close()

	trades, err := trade.Load(f)
	if err != nil {
		return nil, market.Window{}, fmt.Errorf("load %s: %w", cfg.InputFile, err)
	}

	e := ledger.NewEngine(ledger.WithLogger(log))
	if err := e.ProcessAll(trades); err != nil {
		return nil, market.Window{}, fmt.Errorf("process trades: %w", err)
	}

	from, to, err := cfg.Bounds()
	if err != nil {
		return nil, market.Window{}, err
	}
	w, err := report.DefaultWindow(trades, from, to)
	if err != nil {
		return nil, market.Window{}, err
	}

	log.WithFields(logrus.Fields{
		"trades": len(trades),
		"sales":  len(e.Sales()),
		"window": w.String(),
	}).Debug("ledger loaded")
	return e, w, nil
}
