package domain

import "time"

// UserStatus tracks the moderation state of a membership application.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// JoinType enumerates the roles an applicant can request.
type JoinType string

const (
	JoinTypeMember    JoinType = "member"
	JoinTypeVolunteer JoinType = "volunteer"
	JoinTypePartner   JoinType = "partner"
)

// User represents a membership application submitted through the join form.
// Applications are created pending and only reach a terminal state through an
// admin decision; rows are never deleted.
type User struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	Age          int
	Address      string
	Profession   string
	Organization string
	Motivation   string
	Skills       string
	Availability string
	HearAbout    string
	JoinType     JoinType
	Newsletter   bool
	Status       UserStatus
	CreatedAt    time.Time
}

// IsValidJoinType reports whether t is one of the accepted application roles.
func IsValidJoinType(t string) bool {
	switch JoinType(t) {
	case JoinTypeMember, JoinTypeVolunteer, JoinTypePartner:
		return true
	}
	return false
}
