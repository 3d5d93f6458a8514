package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/handler/http/middleware"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
	chatService "github.com/workloop/workloop-backend-go/internal/service/chat"
)

type ChatHandler interface {
	GetHistory(w http.ResponseWriter, r *http.Request)
	DeleteHistory(w http.ResponseWriter, r *http.Request)
	SendMessage(w http.ResponseWriter, r *http.Request)
}

type ChatHandlerImpl struct {
	chatService chatService.Service
}

func NewChatHandler(chatSvc chatService.Service) ChatHandler {
	return &ChatHandlerImpl{chatService: chatSvc}
}

// GetHistory implements ChatHandler.
func (h *ChatHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	counterpartID := chi.URLParam(r, "userID")
	messages, err := h.chatService.GetHistory(r.Context(), principal, counterpartID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, messages)
}

// DeleteHistory implements ChatHandler.
func (h *ChatHandlerImpl) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	counterpartID := chi.URLParam(r, "userID")
	if err := h.chatService.DeleteHistory(r.Context(), principal, counterpartID); err != nil {
		slog.Error("Delete chat history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Conversation deleted successfully", nil)
}

// SendMessage implements ChatHandler. Messages usually arrive over the
// socket; this endpoint is the REST fallback for clients without one.
func (h *ChatHandlerImpl) SendMessage(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var sendReq chat.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&sendReq); err != nil {
		slog.Error("Send message decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	messageResponse, err := h.chatService.SendMessage(r.Context(), principal, sendReq)
	if err != nil {
		slog.Error("Send message service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Message sent successfully", messageResponse)
}
