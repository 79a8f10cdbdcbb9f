package domain

import "time"

// SubscriptionStatusActive marks a live newsletter subscription.
const SubscriptionStatusActive = "active"

// Subscription is a newsletter signup.
type Subscription struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Status       string    `json:"status"`
}
