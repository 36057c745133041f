package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/lawshop/internal/model"
)

func TestComputeTotalsPerCurrency(t *testing.T) {
	items := []model.CartItem{
		{ID: "1", Price: 100, Currency: "USD", Quantity: 2},
		{ID: "2", Price: 50, Currency: "EUR", Quantity: 1},
	}
	tot := ComputeTotals(items)
	assert.Equal(t, 3, tot.Count)
	assert.True(t, decimal.NewFromInt(200).Equal(tot.ByCurrency["USD"]))
	assert.True(t, decimal.NewFromInt(50).Equal(tot.ByCurrency["EUR"]))
	assert.Equal(t, "50 EUR + 200 USD", tot.String())

	_, _, ok := tot.Single()
	assert.False(t, ok)
}

func TestComputeTotalsEmpty(t *testing.T) {
	tot := ComputeTotals(nil)
	assert.NotNil(t, tot.ByCurrency)
	assert.Empty(t, tot.ByCurrency)
	assert.Equal(t, 0, tot.Count)
	assert.Equal(t, "0", tot.String())
}

func TestComputeTotalsIsExact(t *testing.T) {
	items := []model.CartItem{
		{Price: 0.1, Currency: "BYN", Quantity: 3},
		{Price: 0.2, Currency: "BYN", Quantity: 1},
		{Price: 19.99, Quantity: 0},
	}
	tot := ComputeTotals(items)
	assert.Equal(t, "0.5", tot.ByCurrency["BYN"].String())
	assert.Equal(t, "19.99", tot.ByCurrency[DefaultCurrency].String())
	assert.Equal(t, 5, tot.Count)
}

func TestSingleCurrency(t *testing.T) {
	tot := ComputeTotals([]model.CartItem{{Price: 1200, Currency: "RUB", Quantity: 3}})
	cur, amount, ok := tot.Single()
	assert.True(t, ok)
	assert.Equal(t, "RUB", cur)
	assert.Equal(t, "3,600 RUB", tot.String())
	assert.True(t, amount.Equal(decimal.NewFromInt(3600)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(decimal.Zero))
	assert.Equal(t, "1,234,567.5", FormatAmount(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "12.35", FormatAmount(decimal.RequireFromString("12.345")))
	assert.Equal(t, "-1,000", FormatAmount(decimal.NewFromInt(-1000)))
}
