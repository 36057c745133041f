package model

import "time"

type OrderStatus string

const OrderStatusPlaced OrderStatus = "placed"

// Order is an immutable record of a completed checkout.  Items are a frozen
// copy of the cart lines at purchase time and TotalsByCurrency holds one
// entry per currency present in the cart.
type Order struct {
    ID               ID                 `json:"id,omitempty"`
    OrderNumber      string             `json:"orderNumber"`
    UserID           ID                 `json:"userId"`
    Items            []OrderItem        `json:"items"`
    TotalsByCurrency map[string]float64 `json:"totalsByCurrency"`
    ItemCount        int                `json:"itemCount"`
    Status           OrderStatus        `json:"status"`
    CreatedAt        time.Time          `json:"createdAt"`
    UpdatedAt        time.Time          `json:"updatedAt"`
}

// OrderItem is a single purchased line.  LineTotal is UnitPrice*Quantity
// rounded to two decimal places.
type OrderItem struct {
    ServiceID ID      `json:"serviceId"`
    Title     string  `json:"title"`
    Quantity  int     `json:"quantity"`
    UnitPrice float64 `json:"unitPrice"`
    Currency  string  `json:"currency"`
    LineTotal float64 `json:"lineTotal"`
}
