package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/lawshop/internal/model"
)

func sampleOrder() model.Order {
    return model.Order{
        ID:          "9",
        OrderNumber: "LS-0007-LOYW3V28-AB12CD",
        UserID:      "7",
        Items: []model.OrderItem{
            {ServiceID: "1", Title: "Business Law", Quantity: 1, UnitPrice: 50, Currency: "EUR", LineTotal: 50},
            {ServiceID: "2", Title: "Family Law", Quantity: 2, UnitPrice: 100, Currency: "USD", LineTotal: 200},
        },
        TotalsByCurrency: map[string]float64{"USD": 200, "EUR": 50},
        ItemCount:        3,
        CreatedAt:        time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
    }
}

func TestNewOrderPlacedEvent(t *testing.T) {
    ev := NewOrderPlacedEvent(sampleOrder())
    assert.Equal(t, "9", ev.OrderID)
    assert.Equal(t, []string{"Business Law", "Family Law"}, ev.Titles)
    assert.Equal(t, 3, ev.ItemCount)
    assert.Equal(t, "2024-10-01T12:00:00Z", ev.PlacedAt)
}

func TestFormatLineOrdersCurrencies(t *testing.T) {
    line := FormatLine(NewOrderPlacedEvent(sampleOrder()))
    assert.Contains(t, line, "order=LS-0007-LOYW3V28-AB12CD")
    assert.Contains(t, line, "totals=[50.00 EUR, 200.00 USD]")
    assert.Contains(t, line, "items=3")
    assert.True(t, line[len(line)-1] == '\n')
}

func TestHandleMessageAppends(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")
    body, err := json.Marshal(NewOrderPlacedEvent(sampleOrder()))
    require.NoError(t, err)

    require.NoError(t, HandleMessage(dir, body))
    require.NoError(t, HandleMessage(dir, body))

    data, err := os.ReadFile(filepath.Join(dir, OrderLogFile))
    require.NoError(t, err)
    assert.Equal(t, 2, countLines(string(data)))
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
    dir := t.TempDir()
    assert.Error(t, HandleMessage(dir, []byte("{not json")))
    assert.Error(t, HandleMessage(dir, []byte(`{"order_id":"1"}`)))
}

func countLines(s string) int {
    n := 0
    for _, r := range s {
        if r == '\n' {
            n++
        }
    }
    return n
}
