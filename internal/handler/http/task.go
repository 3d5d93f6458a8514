package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/task"
	"github.com/workloop/workloop-backend-go/internal/handler/http/middleware"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
	taskService "github.com/workloop/workloop-backend-go/internal/service/task"
)

type TaskHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ListAssigned(w http.ResponseWriter, r *http.Request)
	ListCreated(w http.ResponseWriter, r *http.Request)
}

type TaskHandlerImpl struct {
	taskService taskService.Service
}

func NewTaskHandler(taskSvc taskService.Service) TaskHandler {
	return &TaskHandlerImpl{taskService: taskSvc}
}

// Assign implements TaskHandler.
func (h *TaskHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var assignReq task.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&assignReq); err != nil {
		slog.Error("Assign task decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	taskResponse, err := h.taskService.AssignTask(r.Context(), principal, employeeID, assignReq)
	if err != nil {
		slog.Error("Assign task service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task assigned successfully", taskResponse)
}

// UpdateStatus implements TaskHandler.
func (h *TaskHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var statusReq task.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		slog.Error("Update task status decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	taskID := chi.URLParam(r, "taskID")
	taskResponse, err := h.taskService.UpdateStatus(r.Context(), principal, taskID, statusReq)
	if err != nil {
		slog.Error("Update task status service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task status updated successfully", taskResponse)
}

// ListAssigned implements TaskHandler.
func (h *TaskHandlerImpl) ListAssigned(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	tasks, err := h.taskService.ListAssigned(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// ListCreated implements TaskHandler.
func (h *TaskHandlerImpl) ListCreated(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	tasks, err := h.taskService.ListCreated(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}
