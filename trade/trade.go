// Package trade holds the exchange-trade record consumed by the ledger, plus
// the text log format it is read from and a generator for synthetic logs.
package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/cryptotax/market"
)

// Trade is one exchange transaction: VolumeFrom of CurrencyFrom was given up
// for VolumeTo of CurrencyTo. Both legs carry their USD price at trade time.
// A Trade is treated as immutable once built.
type Trade struct {
	Time         time.Time
	Exchange     string
	VolumeFrom   float64
	CurrencyFrom market.Currency
	PriceFromUSD float64
	VolumeTo     float64
	CurrencyTo   market.Currency
	PriceToUSD   float64
	Notes        []string
}

// ExpectedVolumeTo is what the trade would have yielded with no fee.
func (t Trade) ExpectedVolumeTo() float64 {
	return t.VolumeFrom * t.PriceFromUSD / t.PriceToUSD
}

// FeeVolume is the shortfall of VolumeTo against ExpectedVolumeTo, in units
// of CurrencyTo. It is signed; a negative value means malformed input.
func (t Trade) FeeVolume() float64 {
	return t.ExpectedVolumeTo() - t.VolumeTo
}

// FeesUSD is FeeVolume priced at the destination USD price.
func (t Trade) FeesUSD() float64 {
	return t.FeeVolume() * t.PriceToUSD
}

// FeesPercent is FeeVolume as a percentage of ExpectedVolumeTo.
func (t Trade) FeesPercent() float64 {
	return t.FeeVolume() * 100 / t.ExpectedVolumeTo()
}

// IsDisposal reports whether the trade gives up a non-fiat currency.
func (t Trade) IsDisposal() bool { return !market.IsFiat(t.CurrencyFrom) }

// IsAcquisition reports whether the trade receives a non-fiat currency.
func (t Trade) IsAcquisition() bool { return !market.IsFiat(t.CurrencyTo) }

// Validate checks the invariants every parsed or generated trade must hold.
func (t Trade) Validate() error {
	if t.Time.IsZero() {
		return fmt.Errorf("trade time is required")
	}
	if !market.ValidCode(t.CurrencyFrom) || !market.ValidCode(t.CurrencyTo) {
		return fmt.Errorf("invalid currency pair %q => %q", t.CurrencyFrom, t.CurrencyTo)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"volume_from", t.VolumeFrom},
		{"volume_to", t.VolumeTo},
		{"price_from_usd", t.PriceFromUSD},
		{"price_to_usd", t.PriceToUSD},
	} {
		if !positiveFinite(v.val) {
			return fmt.Errorf("%s must be positive and finite, got %v", v.name, v.val)
		}
	}
	return nil
}

// String renders the trade as a trade-log line.
func (t Trade) String() string {
	return fmt.Sprintf("[%s] %s %s => %s %s (%s=%s, %s=%s, %s)",
		market.FormatTime(t.Time),
		market.Fixed(t.VolumeFrom), t.CurrencyFrom,
		market.Fixed(t.VolumeTo), t.CurrencyTo,
		t.CurrencyFrom, market.Fixed(t.PriceFromUSD),
		t.CurrencyTo, market.Fixed(t.PriceToUSD),
		t.Exchange,
	)
}

// Detail is String with the fee appended in USD and percent.
func (t Trade) Detail() string {
	s := t.String()
	return fmt.Sprintf("%s, fees=[%s USD, %s%%])",
		strings.TrimSuffix(s, ")"), market.Fixed(t.FeesUSD()), market.Fixed(t.FeesPercent()))
}
