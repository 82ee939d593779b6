package trade

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/cryptotax/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFees(t *testing.T) {
	t.Parallel()

	// 1000 USD at 1.0 buys 10 BTC at 100 with no fee; 9.9 received means 1%.
	tr := Trade{
		VolumeFrom: 1000, CurrencyFrom: "USD", PriceFromUSD: 1,
		VolumeTo: 9.9, CurrencyTo: "BTC", PriceToUSD: 100,
	}
	assert.InDelta(t, 10.0, tr.ExpectedVolumeTo(), 1e-9)
	assert.InDelta(t, 10.0, tr.FeesUSD(), 1e-9)
	assert.InDelta(t, 1.0, tr.FeesPercent(), 1e-9)
	assert.False(t, tr.IsDisposal())
	assert.True(t, tr.IsAcquisition())
}

func TestFeesNegativeNotClamped(t *testing.T) {
	t.Parallel()

	tr := Trade{
		VolumeFrom: 1, CurrencyFrom: "BTC", PriceFromUSD: 100,
		VolumeTo: 110, CurrencyTo: "USD", PriceToUSD: 1,
	}
	assert.InDelta(t, -10.0, tr.FeesUSD(), 1e-9)
	assert.InDelta(t, -10.0, tr.FeesPercent(), 1e-9)
	assert.True(t, tr.IsDisposal())
	assert.False(t, tr.IsAcquisition())
}

func TestParse(t *testing.T) {
	t.Parallel()

	tr, err := Parse("[2017-01-01 00:00:00+00:00] 1000.0 USD => 0.99 BTC (USD=1.0, BTC=1000.0, Exchange_1)")
	require.NoError(t, err)

	assert.True(t, tr.Time.Equal(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Exchange_1", tr.Exchange)
	assert.Equal(t, 1000.0, tr.VolumeFrom)
	assert.Equal(t, "USD", tr.CurrencyFrom)
	assert.Equal(t, 1.0, tr.PriceFromUSD)
	assert.Equal(t, 0.99, tr.VolumeTo)
	assert.Equal(t, "BTC", tr.CurrencyTo)
	assert.Equal(t, 1000.0, tr.PriceToUSD)
	assert.Empty(t, tr.Notes)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		msg  string
	}{
		{"garbage", "hello world", "unrecognized"},
		{"bad time", "[2017-01-01] 1 USD => 1 BTC (USD=1, BTC=1, X)", "time"},
		{"currency mismatch", "[2017-01-01 00:00:00+00:00] 1 USD => 1 BTC (EUR=1, BTC=1, X)", "does not match"},
		{"bad number", "[2017-01-01 00:00:00+00:00] abc USD => 1 BTC (USD=1, BTC=1, X)", "volume_from"},
		{"zero volume", "[2017-01-01 00:00:00+00:00] 0 USD => 1 BTC (USD=1, BTC=1, X)", "positive"},
		{"negative price", "[2017-01-01 00:00:00+00:00] 1 USD => 1 BTC (USD=1, BTC=-1, X)", "positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line)
			require.Error(t, err)
			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	line := "[2018-03-04 05:06:07+00:00] 1.500000000 BTC => 30.000000000 ETH (BTC=10000.000000000, ETH=495.000000000, Exchange_2)"
	tr, err := Parse(line)
	require.NoError(t, err)
	assert.Equal(t, line, tr.String())
	assert.Contains(t, tr.Detail(), "fees=[150.000000000 USD, 1.000000000%])")
}

const sampleLog = `[2017-01-01 00:00:00+00:00] 1000.0 USD => 10.0 BTC (USD=1.0, BTC=100.0, Exchange_1)
--- first buy
--- paid by wire

[2017-02-01 00:00:00+00:00] 4.0 BTC => 600.0 USD (BTC=150.0, USD=1.0, Exchange_1)
`

func TestLoad(t *testing.T) {
	t.Parallel()

	trades, err := Load(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, []string{"first buy", "paid by wire"}, trades[0].Notes)
	assert.Empty(t, trades[1].Notes)
	assert.Equal(t, "BTC", trades[1].CurrencyFrom)
}

func TestLoadReportsLine(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader(sampleLog + "not a trade\n"))
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 6, pe.Line)
}

func TestLoadRejectsOutOfOrder(t *testing.T) {
	t.Parallel()

	log := `[2017-02-01 00:00:00+00:00] 1000.0 USD => 10.0 BTC (USD=1.0, BTC=100.0, X)
[2017-01-01 00:00:00+00:00] 1000.0 USD => 10.0 BTC (USD=1.0, BTC=100.0, X)
`
	_, err := Load(strings.NewReader(log))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "older")
}

func TestLoadNoteFirst(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("--- orphan\n"))
	assert.Error(t, err)
}

func TestWriteLoadRoundTrip(t *testing.T) {
	t.Parallel()

	trades, err := Load(strings.NewReader(sampleLog))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, trades, true))

	again, err := Load(&buf)
	require.NoError(t, err)
	require.Len(t, again, len(trades))
	for i := range trades {
		assert.Equal(t, trades[i].String(), again[i].String())
		assert.Equal(t, trades[i].Notes, again[i].Notes)
	}
}

func TestGenerateConsistent(t *testing.T) {
	t.Parallel()

	w, err := market.NewWindow(
		time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	trades, err := Generate(500, w, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.Len(t, trades, 500)

	held := map[string]float64{}
	for i, tr := range trades {
		require.NoError(t, tr.Validate())
		assert.True(t, w.Contains(tr.Time))
		assert.NotEqual(t, tr.CurrencyFrom, tr.CurrencyTo)
		assert.GreaterOrEqual(t, tr.FeesUSD(), 0.0)
		if i > 0 {
			assert.False(t, tr.Time.Before(trades[i-1].Time))
		}
		if tr.CurrencyFrom != market.USD {
			assert.Less(t, tr.VolumeFrom, held[tr.CurrencyFrom])
			held[tr.CurrencyFrom] -= tr.VolumeFrom
		}
		held[tr.CurrencyTo] += tr.VolumeTo
	}
}

func TestGenerateInvalidWindow(t *testing.T) {
	t.Parallel()

	tm := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := Generate(1, market.Window{From: tm, To: tm}, rand.New(rand.NewPCG(1, 2)))
	assert.ErrorIs(t, err, market.ErrInvalidWindow)
}
