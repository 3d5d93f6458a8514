package postgresql

import (
	"context"

	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
)

type chatRepositoryImpl struct {
	db *database.DB
}

func NewChatRepository(db *database.DB) chat.Repository {
	return &chatRepositoryImpl{db: db}
}

// Create implements chat.Repository.
func (r *chatRepositoryImpl) Create(ctx context.Context, msg chat.Message) (chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO chat_messages (company_id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, sender_id, receiver_id, content, created_at
	`

	var created chat.Message
	err := q.QueryRow(ctx, query,
		msg.CompanyID,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
	).Scan(
		&created.ID,
		&created.CompanyID,
		&created.SenderID,
		&created.ReceiverID,
		&created.Content,
		&created.CreatedAt,
	)
	if err != nil {
		return chat.Message{}, err
	}

	return created, nil
}

// GetConversation implements chat.Repository. Order is creation-time
// ascending regardless of which side sent each row, so
// GetConversation(A, B) and GetConversation(B, A) are identical.
func (r *chatRepositoryImpl) GetConversation(ctx context.Context, companyID, userA, userB string) ([]chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, sender_id, receiver_id, content, created_at
		FROM chat_messages
		WHERE company_id = $1
		  AND ((sender_id = $2 AND receiver_id = $3) OR (sender_id = $3 AND receiver_id = $2))
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, companyID, userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteConversation implements chat.Repository.
func (r *chatRepositoryImpl) DeleteConversation(ctx context.Context, companyID, userA, userB string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM chat_messages
		WHERE company_id = $1
		  AND ((sender_id = $2 AND receiver_id = $3) OR (sender_id = $3 AND receiver_id = $2))
	`, companyID, userA, userB)
	return err
}

// DeleteByParticipant implements chat.Repository.
func (r *chatRepositoryImpl) DeleteByParticipant(ctx context.Context, companyID, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM chat_messages
		WHERE company_id = $1 AND (sender_id = $2 OR receiver_id = $2)
	`, companyID, userID)
	return err
}
