package domain

import "time"

// Subscription is a recurring donation plan created on the payment provider
// after the seeding monthly donation settles. Status mirrors the provider's
// subscription status.
type Subscription struct {
	ID                   int64
	DonationID           int64
	ProviderSubscription string
	ProviderPrice        string
	Status               string
	CreatedAt            time.Time
}
