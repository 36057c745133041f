package model

import "time"

// ModerationPending is the status every new review starts with.
const ModerationPending = "pending"

// Feedback is a customer review of a purchased service.
type Feedback struct {
    ID               ID        `json:"id,omitempty"`
    ServiceID        ID        `json:"serviceId"`
    UserID           ID        `json:"userId"`
    Rating           int       `json:"rating"`
    Comment          string    `json:"comment"`
    CreatedAt        time.Time `json:"createdAt"`
    ModerationStatus string    `json:"moderationStatus"`
    Nickname         string    `json:"nickname,omitempty"`
}
