package domain

import "time"

// SubscriberStatus tracks whether a newsletter subscription is live.
type SubscriberStatus string

const (
	SubscriberActive   SubscriberStatus = "active"
	SubscriberInactive SubscriberStatus = "inactive"
)

// NewsletterSubscriber is keyed by unique email. Resubscribing an inactive
// address reactivates the existing row instead of inserting a new one.
type NewsletterSubscriber struct {
	ID             int64
	Email          string
	Status         SubscriberStatus
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
}
