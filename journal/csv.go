// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/cryptotax/market"
)

var (
	saleColumns = []string{"sale_id", "run_id", "currency", "volume", "proceeds", "cost_basis", "gain", "term", "buy_trade", "sell_trade", "buy_time", "sell_time"}
	lotColumns  = []string{"run_id", "currency", "seq", "volume", "cost_basis", "trade", "acquired_at"}
)

type CSVJournal struct {
	sales  *csv.Writer
	lots   *csv.Writer
	sf, lf *os.File
}

func NewCSV(salesPath, holdingsPath string) (*CSVJournal, error) {
	sf, err := os.Create(salesPath)
	if err != nil {
		return nil, err
	}
	lf, err := os.Create(holdingsPath)
	if err != nil {
		sf.Close()
		return nil, err
	}

	j := &CSVJournal{csv.NewWriter(sf), csv.NewWriter(lf), sf, lf}
	if err := j.writeRow(j.sales, saleColumns); err != nil {
		j.Close()
		return nil, err
	}
	if err := j.writeRow(j.lots, lotColumns); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) RecordSale(s SaleRecord) error {
	return j.writeRow(j.sales, []string{
		s.SaleID,
		s.RunID,
		s.Currency,
		market.Fixed(s.Volume),
		market.Fixed(s.Proceeds),
		market.Fixed(s.CostBasis),
		market.Fixed(s.Gain),
		term(s.LongTerm),
		strconv.Itoa(s.BuyTradeIdx),
		strconv.Itoa(s.SellTradeIdx),
		s.BuyTime.Format(time.RFC3339),
		s.SellTime.Format(time.RFC3339),
	})
}

func (j *CSVJournal) RecordLot(l LotRecord) error {
	return j.writeRow(j.lots, []string{
		l.RunID,
		l.Currency,
		strconv.Itoa(l.Seq),
		market.Fixed(l.Volume),
		market.Fixed(l.CostBasis),
		strconv.Itoa(l.TradeIdx),
		l.AcquiredAt.Format(time.RFC3339),
	})
}

func (j *CSVJournal) Close() error {
	j.sales.Flush()
	if err := j.sales.Error(); err != nil {
		return err
	}
	j.lots.Flush()
	if err := j.lots.Error(); err != nil {
		return err
	}

	if err := j.sf.Close(); err != nil {
		return err
	}
	return j.lf.Close()
}

func (j *CSVJournal) writeRow(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func term(long bool) string {
	if long {
		return "long"
	}
	return "short"
}
