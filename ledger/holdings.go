package ledger

import (
	"sort"

	"github.com/rustyeddy/cryptotax/market"
)

// Lot is a slice of a currency acquired at one cost. Volume and CostBasis
// shrink together as disposals consume it; TradeIdx never changes.
type Lot struct {
	Volume    float64
	CostBasis float64
	TradeIdx  int
}

// Holdings maps a currency to its open lots, oldest first.
type Holdings map[market.Currency][]Lot

// Currencies returns the held currencies in lexicographic order.
func (h Holdings) Currencies() []market.Currency {
	out := make([]market.Currency, 0, len(h))
	for c := range h {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Volume is the total open volume of c.
func (h Holdings) Volume(c market.Currency) float64 {
	var v float64
	for _, l := range h[c] {
		v += l.Volume
	}
	return v
}

// CostBasis is the total open cost basis of c.
func (h Holdings) CostBasis(c market.Currency) float64 {
	var cb float64
	for _, l := range h[c] {
		cb += l.CostBasis
	}
	return cb
}

// Clone returns a deep copy, so callers cannot alias engine state.
func (h Holdings) Clone() Holdings {
	out := make(Holdings, len(h))
	for c, lots := range h {
		out[c] = append([]Lot(nil), lots...)
	}
	return out
}

func (h Holdings) push(c market.Currency, l Lot) {
	h[c] = append(h[c], l)
}

// popFront drops the oldest lot of c, deleting the entry once it is empty.
func (h Holdings) popFront(c market.Currency) {
	lots := h[c]
	if len(lots) <= 1 {
		delete(h, c)
		return
	}
	h[c] = lots[1:]
}
