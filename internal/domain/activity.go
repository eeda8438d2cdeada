package domain

import "time"

// ActivityEntry is an append-only audit record. Writes are best-effort and
// never fail the action they describe.
type ActivityEntry struct {
	ID        int64
	Action    string
	Details   string
	UserID    *int64
	IPAddress string
	UserAgent string
	Country   string
	CreatedAt time.Time
}

// Action tags recorded by the service.
const (
	ActionContactMessage    = "contact_message"
	ActionUserRegistration  = "user_registration"
	ActionUserApproved      = "user_approved"
	ActionUserRejected      = "user_rejected"
	ActionMessageRead       = "message_read"
	ActionNewsletterJoin    = "newsletter_subscription"
	ActionNewsletterRejoin  = "newsletter_resubscription"
	ActionDonationReceived  = "donation_received"
	ActionDonationCompleted = "donation_completed"
	ActionDonationFailed    = "donation_failed"
	ActionEmailSent         = "email_sent"
	ActionAdminLogin        = "admin_login"
)
