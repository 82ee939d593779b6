package journal

import (
	"time"
)

func sampleSale(id string, sold time.Time) SaleRecord {
	return SaleRecord{
		SaleID:       id,
		RunID:        "RUN1",
		Currency:     "BTC",
		Volume:       4,
		Proceeds:     600,
		CostBasis:    400,
		Gain:         200,
		LongTerm:     false,
		BuyTradeIdx:  0,
		SellTradeIdx: 1,
		BuyTime:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		SellTime:     sold,
	}
}
