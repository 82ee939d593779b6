// market/currency.go
package market

// Currency is a short ticker code such as "USD" or "BTC".
type Currency = string

// USD is the reporting fiat currency. Every price in a trade log is quoted in it.
const USD Currency = "USD"

type CurrencyMeta struct {
	Code string
	Name string
	Fiat bool
}

// Currencies lists the codes the generator and the docs know about. The engine
// accepts any code; only USD is treated as fiat.
var Currencies = map[Currency]CurrencyMeta{
	"USD":  {Code: "USD", Name: "US Dollar", Fiat: true},
	"BTC":  {Code: "BTC", Name: "Bitcoin"},
	"ETH":  {Code: "ETH", Name: "Ether"},
	"DOGE": {Code: "DOGE", Name: "Dogecoin"},
}

// IsFiat reports whether c is the reporting currency.
func IsFiat(c Currency) bool {
	return c == USD
}

// ValidCode reports whether s looks like a currency code: 1-10 letters or digits.
func ValidCode(s string) bool {
	if len(s) == 0 || len(s) > 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
