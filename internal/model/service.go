package model

// Format is the delivery format of a service.
type Format string

const (
    FormatOnline   Format = "online"
    FormatInPerson Format = "in_person"
    FormatHybrid   Format = "hybrid"
)

// Service is a catalog entry: a legal service or a packaged product.
//
// Fields:
//  Price           – strictly positive, in Currency.
//  DurationMinutes – optional, never negative.
//  Rating          – 0..5, shown as stars.
//  Type            – "service" or "product".
type Service struct {
    ID               ID       `json:"id,omitempty"`
    Title            string   `json:"title"`
    Slug             string   `json:"slug,omitempty"`
    Category         string   `json:"category"`
    Price            float64  `json:"price"`
    Currency         string   `json:"currency"`
    DurationMinutes  *float64 `json:"durationMinutes,omitempty"`
    Format           Format   `json:"format,omitempty"`
    Audience         string   `json:"audience,omitempty"`
    Image            string   `json:"image,omitempty"`
    Type             string   `json:"type,omitempty"`
    InStock          bool     `json:"inStock"`
    Rating           float64  `json:"rating"`
    ShortDescription string   `json:"shortDescription"`
    Details          string   `json:"details,omitempty"`
}
