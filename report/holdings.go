package report

import (
	"sort"

	"github.com/rustyeddy/cryptotax/ledger"
	"github.com/rustyeddy/cryptotax/market"
)

// HoldingSummary is one currency's open position.
type HoldingSummary struct {
	Currency       market.Currency
	TotalVolume    float64
	TotalCostBasis float64
	// AverageCost includes fees, so it can differ from the average price paid.
	AverageCost float64
	Lots        []ledger.Lot
}

// Snapshot summarises h, largest cost basis first; ties go by currency.
func Snapshot(h ledger.Holdings) []HoldingSummary {
	out := make([]HoldingSummary, 0, len(h))
	for cur, lots := range h {
		s := HoldingSummary{
			Currency: cur,
			Lots:     append([]ledger.Lot(nil), lots...),
		}
		for _, l := range lots {
			s.TotalVolume += l.Volume
			s.TotalCostBasis += l.CostBasis
		}
		if s.TotalVolume != 0 {
			s.AverageCost = s.TotalCostBasis / s.TotalVolume
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCostBasis != out[j].TotalCostBasis {
			return out[i].TotalCostBasis > out[j].TotalCostBasis
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}
