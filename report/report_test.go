package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/cryptotax/ledger"
	"github.com/rustyeddy/cryptotax/market"
	"github.com/rustyeddy/cryptotax/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const scenario = `[2020-01-01 00:00:00+00:00] 1000.0 USD => 10.0 BTC (USD=1.0, BTC=100.0, Exchange_1)
--- opening buy
[2020-01-01 00:00:00+00:00] 1000.0 USD => 100.0 ETH (USD=1.0, ETH=10.0, Exchange_1)
[2020-06-01 00:00:00+00:00] 4.0 BTC => 600.0 USD (BTC=150.0, USD=1.0, Exchange_2)
[2021-03-01 00:00:00+00:00] 6.0 BTC => 1200.0 USD (BTC=200.0, USD=1.0, Exchange_2)
[2021-03-02 00:00:00+00:00] 50.0 ETH => 1500.0 USD (ETH=30.0, USD=1.0, Exchange_3)
`

func loadEngine(t *testing.T) *ledger.Engine {
	t.Helper()
	trades, err := trade.Load(strings.NewReader(scenario))
	require.NoError(t, err)
	e := ledger.NewEngine()
	require.NoError(t, e.ProcessAll(trades))
	return e
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	e := loadEngine(t)
	w, err := market.NewWindow(day(2020, 1, 1), day(2022, 1, 1))
	require.NoError(t, err)

	p, err := Aggregate(e.Sales(), w, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{"BTC"}, p.ShortTerm.Currencies())
	st := p.ShortTerm.ByCurrency["BTC"]
	assert.InDelta(t, 4.0, st.Volume, 1e-9)
	assert.InDelta(t, 600.0, st.Proceeds, 1e-9)
	assert.InDelta(t, 400.0, st.CostBasis, 1e-9)
	assert.InDelta(t, 200.0, st.Gain, 1e-9)

	assert.Equal(t, []string{"BTC", "ETH"}, p.LongTerm.Currencies())
	lt := p.LongTerm.ByCurrency["ETH"]
	assert.InDelta(t, 50.0, lt.Volume, 1e-9)
	assert.InDelta(t, 1500.0, lt.Proceeds, 1e-9)
	assert.InDelta(t, 500.0, lt.CostBasis, 1e-9)
	assert.InDelta(t, 1000.0, lt.Gain, 1e-9)

	assert.InDelta(t, 56.0, p.LongTerm.Total.Volume, 1e-9)
	assert.InDelta(t, 2700.0, p.LongTerm.Total.Proceeds, 1e-9)
	assert.InDelta(t, 1100.0, p.LongTerm.Total.CostBasis, 1e-9)
	assert.InDelta(t, 1600.0, p.LongTerm.Total.Gain, 1e-9)
}

func TestAggregateWindowIsHalfOpen(t *testing.T) {
	t.Parallel()

	e := loadEngine(t)
	w, err := market.NewWindow(day(2020, 6, 1), day(2021, 3, 1))
	require.NoError(t, err)

	p, err := Aggregate(e.Sales(), w, time.UTC)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, p.ShortTerm.Total.Volume, 1e-9)
	assert.Empty(t, p.LongTerm.ByCurrency)
}

func TestAggregateInvalidWindow(t *testing.T) {
	t.Parallel()

	_, err := Aggregate(nil, market.Window{From: day(2021, 1, 1), To: day(2020, 1, 1)}, time.UTC)
	assert.True(t, errors.Is(err, market.ErrInvalidWindow))
}

func TestSnapshotOrdering(t *testing.T) {
	t.Parallel()

	h := ledger.Holdings{
		"ETH":  {{Volume: 5, CostBasis: 100, TradeIdx: 1}},
		"BTC":  {{Volume: 1, CostBasis: 300, TradeIdx: 0}, {Volume: 1, CostBasis: 100, TradeIdx: 2}},
		"DOGE": {{Volume: 1000, CostBasis: 100, TradeIdx: 3}},
	}
	snap := Snapshot(h)
	require.Len(t, snap, 3)

	assert.Equal(t, "BTC", snap[0].Currency)
	assert.InDelta(t, 2.0, snap[0].TotalVolume, 1e-9)
	assert.InDelta(t, 400.0, snap[0].TotalCostBasis, 1e-9)
	assert.InDelta(t, 200.0, snap[0].AverageCost, 1e-9)
	assert.Len(t, snap[0].Lots, 2)

	// Equal cost basis falls back to currency order.
	assert.Equal(t, "DOGE", snap[1].Currency)
	assert.Equal(t, "ETH", snap[2].Currency)
	assert.InDelta(t, 20.0, snap[2].AverageCost, 1e-9)
}

func TestUSDTrades(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		{Time: day(2020, 1, 1), Exchange: "X", VolumeFrom: 1000, CurrencyFrom: "USD", PriceFromUSD: 1, VolumeTo: 9.9, CurrencyTo: "BTC", PriceToUSD: 100},
		{Time: day(2020, 2, 1), Exchange: "X", VolumeFrom: 1, CurrencyFrom: "BTC", PriceFromUSD: 1000, VolumeTo: 9.9, CurrencyTo: "ETH", PriceToUSD: 100},
		{Time: day(2020, 3, 1), Exchange: "X", VolumeFrom: 2, CurrencyFrom: "BTC", PriceFromUSD: 100, VolumeTo: 198, CurrencyTo: "USD", PriceToUSD: 1},
	}
	rows := USDTrades(trades)
	require.Len(t, rows, 4)

	assert.True(t, rows[0].Buy)
	assert.InDelta(t, 10.0, rows[0].FeesUSD, 1e-9)

	assert.False(t, rows[1].Buy)
	assert.Equal(t, "BTC", rows[1].Currency)
	assert.InDelta(t, 0.0, rows[1].FeesUSD, 1e-9)
	assert.True(t, rows[2].Buy)
	assert.Equal(t, "ETH", rows[2].Currency)
	assert.InDelta(t, 10.0, rows[2].FeesUSD, 1e-9)

	assert.Equal(t, "SELL", rows[3].Action())
	assert.InDelta(t, 2.0, rows[3].FeesUSD, 1e-9)

	var buf bytes.Buffer
	w, err := market.NewWindow(day(2020, 2, 1), day(2020, 3, 1))
	require.NoError(t, err)
	require.NoError(t, WriteUSDTrades(&buf, rows, w))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, USDTradeColumns, recs[0])
	assert.Equal(t, []string{"2020-02-01 00:00:00 +0000", "SELL", "X", "BTC", "1.000000000", "1000.000000000", "USD", "0.000000000"}, recs[1])
	assert.Equal(t, "BUY", recs[2][1])
}

func TestDefaultWindow(t *testing.T) {
	t.Parallel()

	trades, err := trade.Load(strings.NewReader(scenario))
	require.NoError(t, err)

	w, err := DefaultWindow(trades, nil, nil)
	require.NoError(t, err)
	assert.True(t, w.From.Equal(day(2020, 1, 1)))
	assert.True(t, w.To.Equal(market.EndOfDay(day(2021, 3, 2))))

	from := day(2021, 1, 1)
	w, err = DefaultWindow(trades, &from, nil)
	require.NoError(t, err)
	assert.True(t, w.From.Equal(from))

	_, err = DefaultWindow(nil, nil, nil)
	assert.Error(t, err)

	to := day(2019, 1, 1)
	_, err = DefaultWindow(trades, nil, &to)
	assert.ErrorIs(t, err, market.ErrInvalidWindow)
}

func TestWriteSalesFull(t *testing.T) {
	t.Parallel()

	e := loadEngine(t)
	w, err := DefaultWindow(e.Trades(), nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSales(&buf, e, w, true))
	out := buf.String()

	assert.Contains(t, out, "4.000000000 BTC 2020-01-01 00:00:00+00:00 2020-06-01 00:00:00+00:00 600.000000000 400.000000000 200.000000000")
	assert.Contains(t, out, "- SELL: [2020-06-01 00:00:00+00:00] 4.000000000 BTC => 600.000000000 USD")
	assert.Contains(t, out, "- BUY: [2020-01-01 00:00:00+00:00] 1000.000000000 USD => 10.000000000 BTC")
	assert.Contains(t, out, "--- opening buy")
}

func TestWriteProceeds(t *testing.T) {
	t.Parallel()

	e := loadEngine(t)
	w, err := DefaultWindow(e.Trades(), nil, nil)
	require.NoError(t, err)
	p, err := Aggregate(e.Sales(), w, time.UTC)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteProceeds(&buf, p))
	out := buf.String()

	long := strings.Index(out, "Target period LONG-TERM gains:")
	short := strings.Index(out, "Target period SHORT-TERM gains:")
	require.GreaterOrEqual(t, long, 0)
	assert.Greater(t, short, long)
	assert.Contains(t, out, "- ETH: volume=50.000000000 proceeds=1500.000000000 cost_basis=500.000000000 gains=1000.000000000")
	assert.Contains(t, out, "total_volume=4.000000000 total_proceeds=600.000000000 total_cost_basis=400.000000000 total_gains=200.000000000")
}

func TestWriteHoldings(t *testing.T) {
	t.Parallel()

	e := loadEngine(t)
	var buf bytes.Buffer
	require.NoError(t, WriteHoldings(&buf, e))

	assert.Equal(t,
		"ETH: volume=50.000000000, cost_basis=500.000000000, avg_cost=10.000000000\n"+
			"  - 50.000000000 ETH (cost_basis=500.000000000, price=10.000000000, 2020-01-01 00:00:00+00:00)\n",
		buf.String())
}

func TestWriteAll(t *testing.T) {
	t.Parallel()

	e := loadEngine(t)
	w, err := DefaultWindow(e.Trades(), nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, e, w))
	out := buf.String()

	assert.Contains(t, out, strings.Join(USDTradeColumns, ","))
	assert.Contains(t, out, "Target period LONG-TERM gains:")
	assert.Contains(t, out, "ETH: volume=50.000000000")
}
