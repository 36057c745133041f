// Package queue defines the order events exchanged over the message broker
// together with their publisher and consumer.
package queue

import (
    "time"

    "github.com/iliyamo/lawshop/internal/model"
)

// OrderPlacedQueue is the durable queue order events are routed to.
const OrderPlacedQueue = "order.placed"

// OrderPlacedEvent is published after an order document has been stored.
// It carries enough of the order for downstream consumers to log or notify
// without reading the document store.
type OrderPlacedEvent struct {
    OrderID          string             `json:"order_id"`
    OrderNumber      string             `json:"order_number"`
    UserID           string             `json:"user_id"`
    Titles           []string           `json:"titles"`
    ItemCount        int                `json:"item_count"`
    TotalsByCurrency map[string]float64 `json:"totals_by_currency"`
    PlacedAt         string             `json:"placed_at"`
}

// NewOrderPlacedEvent builds the event for a stored order.
func NewOrderPlacedEvent(o model.Order) OrderPlacedEvent {
    titles := make([]string, 0, len(o.Items))
    for _, it := range o.Items {
        titles = append(titles, it.Title)
    }
    return OrderPlacedEvent{
        OrderID:          o.ID.String(),
        OrderNumber:      o.OrderNumber,
        UserID:           o.UserID.String(),
        Titles:           titles,
        ItemCount:        o.ItemCount,
        TotalsByCurrency: o.TotalsByCurrency,
        PlacedAt:         o.CreatedAt.UTC().Format(time.RFC3339),
    }
}
