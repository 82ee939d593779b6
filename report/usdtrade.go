package report

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/rustyeddy/cryptotax/market"
	"github.com/rustyeddy/cryptotax/trade"
)

// USDTradeColumns is the bitcoin.tax import header.
var USDTradeColumns = []string{"Date", "Action", "Source", "Symbol", "Volume", "Price", "Currency", "Fee"}

// USDTradeTimeLayout is the bitcoin.tax date layout.
const USDTradeTimeLayout = "2006-01-02 15:04:05 -0700"

// USDTrade is one leg of a trade restated against USD. A crypto-to-crypto
// trade becomes a SELL of the source and a BUY of the destination.
type USDTrade struct {
	Time     time.Time
	Buy      bool
	Exchange string
	Currency market.Currency
	Volume   float64
	PriceUSD float64
	FeesUSD  float64
}

// USDTrades splits trades into their USD legs, SELL before BUY. A SELL only
// carries the fee when it lands in USD; otherwise the BUY leg carries it.
func USDTrades(trades []trade.Trade) []USDTrade {
	var out []USDTrade
	for _, t := range trades {
		if t.IsDisposal() {
			var fee float64
			if market.IsFiat(t.CurrencyTo) {
				fee = t.FeesUSD()
			}
			out = append(out, USDTrade{
				Time: t.Time, Exchange: t.Exchange,
				Currency: t.CurrencyFrom, Volume: t.VolumeFrom, PriceUSD: t.PriceFromUSD,
				FeesUSD: fee,
			})
		}
		if t.IsAcquisition() {
			out = append(out, USDTrade{
				Time: t.Time, Buy: true, Exchange: t.Exchange,
				Currency: t.CurrencyTo, Volume: t.VolumeTo, PriceUSD: t.PriceToUSD,
				FeesUSD: t.FeesUSD(),
			})
		}
	}
	return out
}

func (u USDTrade) Action() string {
	if u.Buy {
		return "BUY"
	}
	return "SELL"
}

func (u USDTrade) Record() []string {
	return []string{
		u.Time.In(market.Location()).Format(USDTradeTimeLayout),
		u.Action(),
		u.Exchange,
		u.Currency,
		market.Fixed(u.Volume),
		market.Fixed(u.PriceUSD),
		market.USD,
		market.Fixed(u.FeesUSD),
	}
}

// WriteUSDTrades writes the rows inside w as bitcoin.tax CSV.
func WriteUSDTrades(out io.Writer, rows []USDTrade, w market.Window) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(USDTradeColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if !w.Contains(r.Time) {
			continue
		}
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
