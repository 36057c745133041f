package cart

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/lawshop/internal/model"
)

// DefaultCurrency applies to lines stored without a currency.
const DefaultCurrency = "USD"

// Totals is the cart summary: one amount per currency and the number of
// units across all lines. Amounts in different currencies are never added.
type Totals struct {
	ByCurrency map[string]decimal.Decimal
	Count      int
}

// LineTotal is price times quantity for one line.
func LineTotal(item model.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(normalize(item.Quantity))))
}

func currencyOf(item model.CartItem) string {
	if c := strings.TrimSpace(item.Currency); c != "" {
		return c
	}
	return DefaultCurrency
}

// ComputeTotals sums lines per currency. An empty cart yields an empty map
// and a zero count.
func ComputeTotals(items []model.CartItem) Totals {
	t := Totals{ByCurrency: map[string]decimal.Decimal{}}
	for _, it := range items {
		cur := currencyOf(it)
		t.ByCurrency[cur] = t.ByCurrency[cur].Add(LineTotal(it))
		t.Count += normalize(it.Quantity)
	}
	return t
}

// Currencies returns the currency codes in lexical order.
func (t Totals) Currencies() []string {
	out := make([]string, 0, len(t.ByCurrency))
	for c := range t.ByCurrency {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Single returns the only currency and its amount. ok is false when the
// cart is empty or mixes currencies; there is no grand total then.
func (t Totals) Single() (currency string, amount decimal.Decimal, ok bool) {
	if len(t.ByCurrency) != 1 {
		return "", decimal.Zero, false
	}
	for c, v := range t.ByCurrency {
		return c, v, true
	}
	return "", decimal.Zero, false
}

// String renders "1,200 USD + 50.5 EUR", or "0" for an empty cart.
func (t Totals) String() string {
	if len(t.ByCurrency) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(t.ByCurrency))
	for _, c := range t.Currencies() {
		parts = append(parts, FormatAmount(t.ByCurrency[c])+" "+c)
	}
	return strings.Join(parts, " + ")
}

// Rounded converts the totals to two-decimal floats for storage.
func (t Totals) Rounded() map[string]float64 {
	out := make(map[string]float64, len(t.ByCurrency))
	for c, v := range t.ByCurrency {
		out[c] = v.Round(2).InexactFloat64()
	}
	return out
}

// FormatAmount prints at most two decimals with thousands separators.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(2).String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}
