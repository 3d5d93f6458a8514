package chat

import (
	"context"
	"errors"

	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/validator"
	"github.com/workloop/workloop-backend-go/internal/pkg/ws"
)

type Service interface {
	// GetHistory returns the full conversation with the counterpart,
	// ascending by creation time. An empty conversation is not an error.
	GetHistory(ctx context.Context, p auth.Principal, counterpartID string) ([]chat.Response, error)
	// DeleteHistory removes the conversation. Idempotent.
	DeleteHistory(ctx context.Context, p auth.Principal, counterpartID string) error
	// SendMessage persists the message and relays it to the receiver's
	// channel only. The sender renders its own copy locally.
	SendMessage(ctx context.Context, sender auth.Principal, req chat.SendMessageRequest) (chat.Response, error)
	// RelayTyping forwards a typing indicator to the receiver. Nothing
	// is persisted.
	RelayTyping(ctx context.Context, sender auth.Principal, receiverID string)
}

type ChatServiceImpl struct {
	chatRepo   chat.Repository
	userRepo   user.Repository
	dispatcher ws.Dispatcher
}

func NewChatService(chatRepo chat.Repository, userRepo user.Repository, dispatcher ws.Dispatcher) Service {
	return &ChatServiceImpl{
		chatRepo:   chatRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// GetHistory implements Service.
func (s *ChatServiceImpl) GetHistory(ctx context.Context, p auth.Principal, counterpartID string) ([]chat.Response, error) {
	// The counterpart must exist within the caller's tenant.
	if _, err := s.userRepo.GetByID(ctx, p.CompanyID, counterpartID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.GetConversation(ctx, p.CompanyID, p.UserID, counterpartID)
	if err != nil {
		return nil, err
	}

	responses := make([]chat.Response, len(messages))
	for i, m := range messages {
		responses[i] = chat.ToResponse(m)
	}
	return responses, nil
}

// DeleteHistory implements Service.
func (s *ChatServiceImpl) DeleteHistory(ctx context.Context, p auth.Principal, counterpartID string) error {
	return s.chatRepo.DeleteConversation(ctx, p.CompanyID, p.UserID, counterpartID)
}

// SendMessage implements Service.
func (s *ChatServiceImpl) SendMessage(ctx context.Context, sender auth.Principal, req chat.SendMessageRequest) (chat.Response, error) {
	if validator.IsEmpty(req.Content) {
		return chat.Response{}, chat.ErrMissingContent
	}
	if req.ReceiverID == sender.UserID {
		return chat.Response{}, chat.ErrCannotMessageSelf
	}

	// Channel naming is role-qualified, so the receiver's role has to
	// be resolved before the relay can pick a channel.
	receiver, err := s.userRepo.GetByID(ctx, sender.CompanyID, req.ReceiverID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return chat.Response{}, chat.ErrReceiverNotFound
		}
		return chat.Response{}, err
	}

	created, err := s.chatRepo.Create(ctx, chat.Message{
		CompanyID:  sender.CompanyID,
		SenderID:   sender.UserID,
		ReceiverID: receiver.ID,
		Content:    req.Content,
	})
	if err != nil {
		return chat.Response{}, err
	}

	resp := chat.ToResponse(created)

	// Live delivery is best-effort; a disconnected receiver reads the
	// message from history on their next fetch.
	if channel, ok := ws.ChannelFor(receiver.Role, receiver.ID); ok {
		s.dispatcher.Emit(channel, ws.Event{
			Type: ws.EventReceiveMessage,
			Data: resp,
		})
	}

	return resp, nil
}

// RelayTyping implements Service.
func (s *ChatServiceImpl) RelayTyping(ctx context.Context, sender auth.Principal, receiverID string) {
	receiver, err := s.userRepo.GetByID(ctx, sender.CompanyID, receiverID)
	if err != nil {
		return
	}
	if channel, ok := ws.ChannelFor(receiver.Role, receiver.ID); ok {
		s.dispatcher.Emit(channel, ws.Event{
			Type: ws.EventTyping,
			Data: map[string]string{"senderId": sender.UserID},
		})
	}
}
