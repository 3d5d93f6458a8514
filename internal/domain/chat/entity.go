package chat

import "time"

// Message is a single durable chat message. Live delivery is a
// best-effort notification; the row is the source of truth.
type Message struct {
	ID         string
	CompanyID  string
	SenderID   string
	ReceiverID string
	Content    string
	CreatedAt  time.Time
}
