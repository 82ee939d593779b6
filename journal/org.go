package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/cryptotax/market"
)

// FormatSaleOrg renders a SaleRecord as an Org-mode block. The structured
// facts go in a PROPERTIES drawer; Notes is left for the reviewer.
func FormatSaleOrg(s SaleRecord) string {
	heading := fmt.Sprintf("** Sale: %s %s (%s)", market.FixedN(s.Volume, 8), s.Currency, shortID(s.SaleID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":SALE_ID: %s\n", s.SaleID))
	b.WriteString(fmt.Sprintf(":RUN_ID: %s\n", s.RunID))
	b.WriteString(fmt.Sprintf(":CURRENCY: %s\n", s.Currency))
	b.WriteString(fmt.Sprintf(":VOLUME: %s\n", market.Fixed(s.Volume)))
	b.WriteString(fmt.Sprintf(":PROCEEDS: %s\n", market.FixedN(s.Proceeds, 2)))
	b.WriteString(fmt.Sprintf(":COST_BASIS: %s\n", market.FixedN(s.CostBasis, 2)))
	b.WriteString(fmt.Sprintf(":GAIN: %s\n", market.FixedN(s.Gain, 2)))
	b.WriteString(fmt.Sprintf(":TERM: %s\n", term(s.LongTerm)))
	b.WriteString(fmt.Sprintf(":ACQUIRED: %s\n", s.BuyTime.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":SOLD: %s\n", s.SellTime.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":BUY_TRADE: %d\n", s.BuyTradeIdx))
	b.WriteString(fmt.Sprintf(":SELL_TRADE: %d\n", s.SellTradeIdx))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatSalesOrg renders multiple sales separated by blank lines.
func FormatSalesOrg(sales []SaleRecord) string {
	var b strings.Builder
	for i, s := range sales {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatSaleOrg(s))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
