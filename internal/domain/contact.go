package domain

import "time"

// MessageStatus tracks whether staff have reviewed a contact message.
type MessageStatus string

const (
	MessageStatusNew  MessageStatus = "new"
	MessageStatusRead MessageStatus = "read"
)

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Status    MessageStatus
	CreatedAt time.Time
}
