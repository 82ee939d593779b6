package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const saleSelect = `
		SELECT sale_id, run_id, currency, volume, proceeds, cost_basis, gain, long_term, buy_trade, sell_trade, buy_time, sell_time
		FROM sales`

type scanner interface {
	Scan(dest ...any) error
}

func scanSale(row scanner) (SaleRecord, error) {
	var rec SaleRecord
	err := row.Scan(
		&rec.SaleID,
		&rec.RunID,
		&rec.Currency,
		&rec.Volume,
		&rec.Proceeds,
		&rec.CostBasis,
		&rec.Gain,
		&rec.LongTerm,
		&rec.BuyTradeIdx,
		&rec.SellTradeIdx,
		&rec.BuyTime,
		&rec.SellTime,
	)
	return rec, err
}

// GetSale returns a single sale record by ID.
func (j *SQLite) GetSale(saleID string) (SaleRecord, error) {
	row := j.db.QueryRow(saleSelect+`
		WHERE sale_id = ?`, saleID)

	rec, err := scanSale(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SaleRecord{}, fmt.Errorf("sale %q not found", saleID)
		}
		return SaleRecord{}, err
	}
	return rec, nil
}

// ListSalesBetween returns sales whose sell_time is within [start, end),
// oldest first.
func (j *SQLite) ListSalesBetween(start, end time.Time) ([]SaleRecord, error) {
	rows, err := j.db.Query(saleSelect+`
		WHERE sell_time >= ? AND sell_time < ?
		ORDER BY sell_time ASC, sale_id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaleRecord
	for rows.Next() {
		rec, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLots returns the open lots recorded for runID in FIFO order.
func (j *SQLite) ListLots(runID string) ([]LotRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, currency, seq, volume, cost_basis, trade, acquired_at
		FROM lots
		WHERE run_id = ?
		ORDER BY currency ASC, seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LotRecord
	for rows.Next() {
		var rec LotRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Currency,
			&rec.Seq,
			&rec.Volume,
			&rec.CostBasis,
			&rec.TradeIdx,
			&rec.AcquiredAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
