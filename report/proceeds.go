// Package report turns a ledger's sales and holdings into the summaries and
// listings printed by the CLI.
package report

import (
	"sort"
	"time"

	"github.com/rustyeddy/cryptotax/ledger"
	"github.com/rustyeddy/cryptotax/market"
)

// Totals accumulates realized sales.
type Totals struct {
	Volume    float64
	Proceeds  float64
	CostBasis float64
	Gain      float64
}

func (t *Totals) add(s ledger.Sale) {
	t.Volume += s.Volume
	t.Proceeds += s.Proceeds
	t.CostBasis += s.CostBasis
	t.Gain += s.Gain()
}

// Bucket holds one holding-period class, grouped by currency.
type Bucket struct {
	ByCurrency map[market.Currency]Totals
	Total      Totals
}

// Currencies returns the bucket's currencies in lexicographic order.
func (b Bucket) Currencies() []market.Currency {
	out := make([]market.Currency, 0, len(b.ByCurrency))
	for c := range b.ByCurrency {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Proceeds splits the sales of a window into long- and short-term buckets.
type Proceeds struct {
	Window    market.Window
	LongTerm  Bucket
	ShortTerm Bucket
}

// Aggregate sums the sales whose sell time falls inside w, classifying each
// one in the calendar of loc. An invalid window is rejected.
func Aggregate(sales []ledger.Sale, w market.Window, loc *time.Location) (Proceeds, error) {
	if err := w.Validate(); err != nil {
		return Proceeds{}, err
	}

	p := Proceeds{
		Window:    w,
		LongTerm:  Bucket{ByCurrency: map[market.Currency]Totals{}},
		ShortTerm: Bucket{ByCurrency: map[market.Currency]Totals{}},
	}
	for _, s := range sales {
		if !w.Contains(s.SellTime) {
			continue
		}
		b := &p.ShortTerm
		if s.IsLongTermIn(loc) {
			b = &p.LongTerm
		}
		tot := b.ByCurrency[s.Currency]
		tot.add(s)
		b.ByCurrency[s.Currency] = tot
		b.Total.add(s)
	}
	return p, nil
}
