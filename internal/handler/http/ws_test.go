package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
)

// fakeChatService records what the socket layer hands it.
type fakeChatService struct {
	sent  []chat.SendMessageRequest
	typed []string
}

func (f *fakeChatService) GetHistory(ctx context.Context, p auth.Principal, counterpartID string) ([]chat.Response, error) {
	return nil, nil
}

func (f *fakeChatService) DeleteHistory(ctx context.Context, p auth.Principal, counterpartID string) error {
	return nil
}

func (f *fakeChatService) SendMessage(ctx context.Context, sender auth.Principal, req chat.SendMessageRequest) (chat.Response, error) {
	f.sent = append(f.sent, req)
	return chat.Response{}, nil
}

func (f *fakeChatService) RelayTyping(ctx context.Context, sender auth.Principal, receiverID string) {
	f.typed = append(f.typed, receiverID)
}

func wsTestClient() *wsClient {
	return &wsClient{
		ctx: context.Background(),
		principal: auth.Principal{
			UserID:    "emp-1",
			Role:      user.RoleEmployee,
			CompanyID: "comp-1",
		},
	}
}

// Frames arrive with camelCase payload keys; the dispatcher must carry
// them through to the chat service intact.
func TestDispatch_SendMessageFrame(t *testing.T) {
	fake := &fakeChatService{}
	h := &WSHandlerImpl{chatService: fake}

	h.dispatch(wsTestClient(), inboundFrame{
		Event: inboundSendMessage,
		Data:  json.RawMessage(`{"receiverId":"lead-1","content":"hi"}`),
	})

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "lead-1", fake.sent[0].ReceiverID)
	assert.Equal(t, "hi", fake.sent[0].Content)
}

func TestDispatch_TypingFrame(t *testing.T) {
	fake := &fakeChatService{}
	h := &WSHandlerImpl{chatService: fake}

	h.dispatch(wsTestClient(), inboundFrame{
		Event: inboundTyping,
		Data:  json.RawMessage(`{"receiverId":"lead-1"}`),
	})

	require.Len(t, fake.typed, 1)
	assert.Equal(t, "lead-1", fake.typed[0])
	assert.Empty(t, fake.sent)
}

func TestDispatch_UnknownEventIgnored(t *testing.T) {
	fake := &fakeChatService{}
	h := &WSHandlerImpl{chatService: fake}

	h.dispatch(wsTestClient(), inboundFrame{
		Event: "join-room",
		Data:  json.RawMessage(`{"receiverId":"lead-1"}`),
	})

	assert.Empty(t, fake.sent)
	assert.Empty(t, fake.typed)
}
