package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/handler/http/middleware"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
	employeeService "github.com/workloop/workloop-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	ListTeam(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employeeService.Service
}

func NewEmployeeHandler(employeeSvc employeeService.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeSvc}
}

// ListTeam implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListTeam(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employees, err := h.employeeService.ListTeam(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.employeeService.DeleteEmployee(r.Context(), principal, employeeID); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee deleted", "employee_id", employeeID)
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// GetProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := h.employeeService.GetProfile(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// UpdateProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.employeeService.UpdateProfile(r.Context(), principal, updateReq)
	if err != nil {
		slog.Error("Update profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}

// ChangePassword implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var changeReq user.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		slog.Error("Change password decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.ChangePassword(r.Context(), principal, changeReq); err != nil {
		slog.Error("Change password service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
