package chat

import "context"

type Repository interface {
	Create(ctx context.Context, msg Message) (Message, error)
	// GetConversation returns all messages exchanged between the two
	// users in either direction, ascending by creation time.
	GetConversation(ctx context.Context, companyID, userA, userB string) ([]Message, error)
	// DeleteConversation removes the pair's history. Deleting an empty
	// conversation is not an error.
	DeleteConversation(ctx context.Context, companyID, userA, userB string) error
	DeleteByParticipant(ctx context.Context, companyID, userID string) error
}
