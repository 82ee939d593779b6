package trade

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rustyeddy/cryptotax/market"
)

var (
	genCurrencies = knownCurrencies()
	genFeeMults   = []float64{0.99, 0.995, 0.999}
	genExchanges  = []string{"Exchange_1", "Exchange_2", "Exchange_3"}
)

func knownCurrencies() []market.Currency {
	out := make([]market.Currency, 0, len(market.Currencies))
	for c := range market.Currencies {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

const genEPS = 1e-5

// Generate builds n random trades inside w that never dispose of more of a
// currency than earlier trades acquired. USD is bought with freely (an
// external deposit); everything else must be held before it is sold.
func Generate(n int, w market.Window, rng *rand.Rand) ([]Trade, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("trade count must not be negative, got %d", n)
	}

	span := w.To.Sub(w.From)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = w.From.Add(time.Duration(rng.Int64N(int64(span)))).In(market.Location())
	}
	slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })

	wallet := map[market.Currency]float64{}
	trades := make([]Trade, 0, n)

	for i := 0; i < n; i++ {
		var canSell []market.Currency
		for _, c := range genCurrencies {
			if wallet[c] > genEPS {
				canSell = append(canSell, c)
			}
		}
		sell := len(canSell) > 0 && rng.IntN(2) == 0

		var t Trade
		if sell {
			t.CurrencyFrom = canSell[rng.IntN(len(canSell))]
			t.PriceFromUSD = randPrice(rng, t.CurrencyFrom)
			have := wallet[t.CurrencyFrom]
			t.VolumeFrom = have * (0.1 + 0.9*rng.Float64())
			if t.VolumeFrom >= have {
				t.VolumeFrom = have * 0.9
			}
		} else {
			t.CurrencyFrom = market.USD
			t.PriceFromUSD = 1.0
			t.VolumeFrom = 10 + 990*rng.Float64()
		}
		t.CurrencyTo = pickOther(rng, t.CurrencyFrom)
		t.PriceToUSD = randPrice(rng, t.CurrencyTo)
		t.VolumeTo = t.ExpectedVolumeTo() * genFeeMults[rng.IntN(len(genFeeMults))]
		t.Time = times[i]
		t.Exchange = genExchanges[rng.IntN(len(genExchanges))]

		if sell {
			wallet[t.CurrencyFrom] -= t.VolumeFrom
		}
		wallet[t.CurrencyTo] += t.VolumeTo
		trades = append(trades, t)
	}
	return trades, nil
}

func randPrice(rng *rand.Rand, c market.Currency) float64 {
	if market.IsFiat(c) {
		return 1.0
	}
	return 1 + 99*rng.Float64()
}

func pickOther(rng *rand.Rand, not market.Currency) market.Currency {
	for {
		c := genCurrencies[rng.IntN(len(genCurrencies))]
		if c != not {
			return c
		}
	}
}
