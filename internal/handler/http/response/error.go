package response

import (
	"errors"
	"net/http"

	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/domain/company"
	"github.com/workloop/workloop-backend-go/internal/domain/report"
	"github.com/workloop/workloop-backend-go/internal/domain/task"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidEmailFormat):
		BadRequest(w, "Invalid email format", nil)
	case errors.Is(err, user.ErrInvalidPasswordLength):
		BadRequest(w, "Password must be at least 8 characters", nil)
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrTeamLeadRequired):
		BadRequest(w, "Employee must reference a team lead in the same company", nil)
	case errors.Is(err, user.ErrTeamLeadAccessRequired):
		Forbidden(w, "Team lead access required")
	case errors.Is(err, user.ErrEmployeeAccessRequired):
		Forbidden(w, "Employee access required")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		BadRequest(w, "Cannot delete your own account", nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyNameExists):
		Conflict(w, "Company name already registered")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrInvalidStatus):
		BadRequest(w, "Invalid task status", nil)
	case errors.Is(err, task.ErrNotAssignee):
		Forbidden(w, "Task is not assigned to you")
	case errors.Is(err, task.ErrNotManagedByLead):
		Forbidden(w, "Employee does not report to you")

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrInvalidDecision):
		BadRequest(w, "Review status must be APPROVED or REJECTED", nil)
	case errors.Is(err, report.ErrNotAuthor):
		Forbidden(w, "Only the report author may modify it")
	case errors.Is(err, report.ErrAlreadyReviewed):
		Conflict(w, "Report has already been reviewed")
	case errors.Is(err, report.ErrMissingContent):
		BadRequest(w, "Content is required", nil)
	case errors.Is(err, report.ErrNotManagedByLead):
		Forbidden(w, "Report author does not report to you")

	// Chat domain errors
	case errors.Is(err, chat.ErrMissingContent):
		BadRequest(w, "Message content is required", nil)
	case errors.Is(err, chat.ErrReceiverNotFound):
		NotFound(w, "Receiver not found")
	case errors.Is(err, chat.ErrCannotMessageSelf):
		BadRequest(w, "Cannot send a message to yourself", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
