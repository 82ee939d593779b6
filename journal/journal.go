// journal/journal.go
package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/cryptotax/internal/id"
	"github.com/rustyeddy/cryptotax/ledger"
	"github.com/rustyeddy/cryptotax/trade"
)

// SaleRecord is a realized sale as written to a journal.
type SaleRecord struct {
	SaleID       string
	RunID        string
	Currency     string
	Volume       float64
	Proceeds     float64
	CostBasis    float64
	Gain         float64
	LongTerm     bool
	BuyTradeIdx  int
	SellTradeIdx int
	BuyTime      time.Time
	SellTime     time.Time
}

// LotRecord is an open lot left at the end of a run. Seq is the lot's FIFO
// position within its currency.
type LotRecord struct {
	RunID      string
	Currency   string
	Seq        int
	Volume     float64
	CostBasis  float64
	TradeIdx   int
	AcquiredAt time.Time
}

type Journal interface {
	RecordSale(SaleRecord) error
	RecordLot(LotRecord) error
	Close() error
}

// Source is what Export reads from; *ledger.Engine satisfies it.
type Source interface {
	Sales() []ledger.Sale
	Holdings() ledger.Holdings
	Trade(idx int) (trade.Trade, bool)
}

// NewSaleRecord stamps s with a fresh sale ID and classifies it in loc.
func NewSaleRecord(runID string, s ledger.Sale, loc *time.Location) SaleRecord {
	return SaleRecord{
		SaleID:       id.New(),
		RunID:        runID,
		Currency:     s.Currency,
		Volume:       s.Volume,
		Proceeds:     s.Proceeds,
		CostBasis:    s.CostBasis,
		Gain:         s.Gain(),
		LongTerm:     s.IsLongTermIn(loc),
		BuyTradeIdx:  s.BuyTradeIdx,
		SellTradeIdx: s.SellTradeIdx,
		BuyTime:      s.BuyTime,
		SellTime:     s.SellTime,
	}
}

// Export writes every sale and open lot of a finished run to j and returns
// the number of records written.
func Export(j Journal, e Source, runID string, loc *time.Location) (int, error) {
	n := 0
	for i, s := range e.Sales() {
		if err := j.RecordSale(NewSaleRecord(runID, s, loc)); err != nil {
			return n, fmt.Errorf("record sale %d: %w", i, err)
		}
		n++
	}

	h := e.Holdings()
	for _, cur := range h.Currencies() {
		for seq, l := range h[cur] {
			t, ok := e.Trade(l.TradeIdx)
			if !ok {
				return n, fmt.Errorf("lot %s/%d: unknown trade %d", cur, seq, l.TradeIdx)
			}
			rec := LotRecord{
				RunID:      runID,
				Currency:   cur,
				Seq:        seq,
				Volume:     l.Volume,
				CostBasis:  l.CostBasis,
				TradeIdx:   l.TradeIdx,
				AcquiredAt: t.Time,
			}
			if err := j.RecordLot(rec); err != nil {
				return n, fmt.Errorf("record lot %s/%d: %w", cur, seq, err)
			}
			n++
		}
	}
	return n, nil
}
