package model

// CartItem is one line of the shopping cart as stored in the cart
// collection.  Title, price, currency and image are copied from the service
// when the line is created and are not kept in sync afterwards.
type CartItem struct {
    ID        ID      `json:"id,omitempty"`
    ServiceID ID      `json:"serviceId"`
    Title     string  `json:"title"`
    Price     float64 `json:"price"`
    Currency  string  `json:"currency"`
    Image     string  `json:"image,omitempty"`
    Quantity  int     `json:"quantity"`
    OwnerID   ID      `json:"ownerId,omitempty"` // empty for the single shared cart
}

// Favorite is a service bookmarked by a visitor.
type Favorite struct {
    ID        ID      `json:"id,omitempty"`
    ServiceID ID      `json:"serviceId"`
    Title     string  `json:"title"`
    Price     float64 `json:"price"`
    Currency  string  `json:"currency"`
    Image     string  `json:"image,omitempty"`
    Category  string  `json:"category,omitempty"`
    OwnerID   ID      `json:"ownerId,omitempty"`
}
