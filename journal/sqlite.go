package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Times are stored in UTC so range queries compare like with like.
func (j *SQLite) RecordSale(s SaleRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO sales
		(sale_id, run_id, currency, volume, proceeds, cost_basis, gain, long_term, buy_trade, sell_trade, buy_time, sell_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SaleID, s.RunID, s.Currency, s.Volume, s.Proceeds, s.CostBasis, s.Gain,
		s.LongTerm, s.BuyTradeIdx, s.SellTradeIdx, s.BuyTime.UTC(), s.SellTime.UTC(),
	)
	return err
}

func (j *SQLite) RecordLot(l LotRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO lots
		(run_id, currency, seq, volume, cost_basis, trade, acquired_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.RunID, l.Currency, l.Seq, l.Volume, l.CostBasis, l.TradeIdx, l.AcquiredAt.UTC(),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
