package cart

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/iliyamo/lawshop/internal/model"
)

// BuildOrder freezes the lines into an order. Line totals and per-currency
// totals are rounded to two decimals.
func BuildOrder(items []model.CartItem, userID model.ID, now time.Time, suffix string) model.Order {
	lines := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, model.OrderItem{
			ServiceID: it.ServiceID,
			Title:     it.Title,
			Quantity:  normalize(it.Quantity),
			UnitPrice: it.Price,
			Currency:  currencyOf(it),
			LineTotal: LineTotal(it).Round(2).InexactFloat64(),
		})
	}
	totals := ComputeTotals(items)
	now = now.UTC()
	return model.Order{
		OrderNumber:      OrderNumber(userID, now, suffix),
		UserID:           userID,
		Items:            lines,
		TotalsByCurrency: totals.Rounded(),
		ItemCount:        totals.Count,
		Status:           model.OrderStatusPlaced,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// OrderNumber is LS-<user>-<time>-<suffix>: the last four alphanumerics of
// the user id, the millisecond clock in base 36 and a random suffix, all
// upper case.
func OrderNumber(userID model.ID, now time.Time, suffix string) string {
	var alnum []rune
	for _, r := range userID.String() {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum = append(alnum, unicode.ToUpper(r))
		}
	}
	if len(alnum) > 4 {
		alnum = alnum[len(alnum)-4:]
	}
	frag := strings.Repeat("0", 4-len(alnum)) + string(alnum)
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return "LS-" + frag + "-" + stamp + "-" + strings.ToUpper(suffix)
}

// RandomSuffix returns six hex characters from a random UUID.
func RandomSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
