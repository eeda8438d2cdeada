package domain

import "time"

// DonationStatus tracks the payment lifecycle of a donation.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
)

// DonationCategory identifies which program a donation supports.
type DonationCategory string

const (
	CategoryGeneral     DonationCategory = "general"
	CategoryWomen       DonationCategory = "women"
	CategoryChildren    DonationCategory = "children"
	CategoryEnvironment DonationCategory = "environment"
	CategoryHealth      DonationCategory = "health"
	CategoryEducation   DonationCategory = "education"
)

// DonationFrequency distinguishes one-time gifts from recurring plans.
type DonationFrequency string

const (
	FrequencyOneTime DonationFrequency = "one-time"
	FrequencyMonthly DonationFrequency = "monthly"
)

// Donation represents a supporter contribution. Amount is an integer number
// of currency units (FCFA has no minor unit in practice). DonorName and
// DonorEmail stay on the row even for anonymous gifts so a receipt can still
// be issued, but staff-facing views must mask them.
type Donation struct {
	ID               int64
	DonorName        *string
	DonorEmail       *string
	Amount           int64
	Currency         string
	Category         DonationCategory
	Frequency        DonationFrequency
	Anonymous        bool
	PaymentReference string
	PaymentIntentID  *string
	Status           DonationStatus
	Notes            string
	FailureReason    *string
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

// IsValidCategory reports whether c names a supported donation program.
func IsValidCategory(c string) bool {
	switch DonationCategory(c) {
	case CategoryGeneral, CategoryWomen, CategoryChildren, CategoryEnvironment, CategoryHealth, CategoryEducation:
		return true
	}
	return false
}

// IsValidFrequency reports whether f is a supported donation frequency.
func IsValidFrequency(f string) bool {
	switch DonationFrequency(f) {
	case FrequencyOneTime, FrequencyMonthly:
		return true
	}
	return false
}
