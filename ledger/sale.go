package ledger

import (
	"fmt"
	"time"

	"github.com/rustyeddy/cryptotax/market"
	"github.com/rustyeddy/cryptotax/trade"
)

// Sale is one realized disposal matched against one lot (or a fragment of
// it). BuyTradeIdx and SellTradeIdx index the engine's trade history.
type Sale struct {
	Volume       float64
	Currency     market.Currency
	CostBasis    float64
	Proceeds     float64
	BuyTradeIdx  int
	SellTradeIdx int
	BuyTime      time.Time
	SellTime     time.Time
}

// newSale prices volume units of sell's source currency. The fee only comes
// out of proceeds when the disposal lands in USD; otherwise it is already in
// the cost basis of the acquired currency.
func newSale(volume, costBasis float64, buy, sell trade.Trade, buyIdx, sellIdx int) Sale {
	var fee float64
	if market.IsFiat(sell.CurrencyTo) {
		fee = volume / sell.VolumeFrom * sell.FeesUSD()
	}
	return Sale{
		Volume:       volume,
		Currency:     sell.CurrencyFrom,
		CostBasis:    costBasis,
		Proceeds:     volume*sell.PriceFromUSD - fee,
		BuyTradeIdx:  buyIdx,
		SellTradeIdx: sellIdx,
		BuyTime:      buy.Time,
		SellTime:     sell.Time,
	}
}

func (s Sale) Gain() float64 {
	return s.Proceeds - s.CostBasis
}

// IsLongTerm classifies the sale in the application calendar.
func (s Sale) IsLongTerm() bool {
	return s.IsLongTermIn(market.Location())
}

func (s Sale) IsLongTermIn(loc *time.Location) bool {
	return IsLongTerm(s.BuyTime, s.SellTime, loc)
}

// String renders the Form 8949 columns: volume, currency, acquired, sold,
// proceeds, cost basis, gain.
func (s Sale) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s %s",
		market.Fixed(s.Volume),
		s.Currency,
		market.FormatTime(s.BuyTime),
		market.FormatTime(s.SellTime),
		market.Fixed(s.Proceeds),
		market.Fixed(s.CostBasis),
		market.Fixed(s.Gain()),
	)
}
