package task

import (
	"context"
	"time"

	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/task"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/validator"
	"github.com/workloop/workloop-backend-go/internal/pkg/ws"
)

type Service interface {
	AssignTask(ctx context.Context, lead auth.Principal, employeeID string, req task.AssignTaskRequest) (task.Response, error)
	UpdateStatus(ctx context.Context, employee auth.Principal, taskID string, req task.UpdateStatusRequest) (task.Response, error)
	ListAssigned(ctx context.Context, employee auth.Principal) ([]task.Response, error)
	ListCreated(ctx context.Context, lead auth.Principal) ([]task.Response, error)
}

type TaskServiceImpl struct {
	taskRepo   task.Repository
	userRepo   user.Repository
	dispatcher ws.Dispatcher
}

func NewTaskService(taskRepo task.Repository, userRepo user.Repository, dispatcher ws.Dispatcher) Service {
	return &TaskServiceImpl{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// AssignTask creates a task for an employee managed by the team lead
// and pushes a taskAssigned event to the employee's channel. The event
// is a best-effort notification; the REST response is the confirmation.
func (s *TaskServiceImpl) AssignTask(ctx context.Context, lead auth.Principal, employeeID string, req task.AssignTaskRequest) (task.Response, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	var deadline time.Time
	if validator.IsEmpty(req.Deadline) {
		errs = append(errs, validator.ValidationError{Field: "deadline", Message: "deadline is required"})
	} else {
		var ok bool
		deadline, ok = validator.IsValidTimestamp(req.Deadline)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "deadline", Message: "deadline must be an RFC 3339 timestamp"})
		}
	}
	if len(errs) > 0 {
		return task.Response{}, errs
	}

	// The lookup is company-scoped, so an employee from another tenant
	// is indistinguishable from a missing one.
	employee, err := s.userRepo.GetByID(ctx, lead.CompanyID, employeeID)
	if err != nil {
		return task.Response{}, err
	}
	if !employee.ReportsTo(lead.UserID) {
		return task.Response{}, task.ErrNotManagedByLead
	}

	created, err := s.taskRepo.Create(ctx, task.Task{
		CompanyID:    lead.CompanyID,
		Title:        req.Title,
		Description:  req.Description,
		Deadline:     deadline,
		Status:       task.StatusPending,
		AssignedToID: employee.ID,
		AssignedByID: lead.UserID,
	})
	if err != nil {
		return task.Response{}, err
	}

	resp := task.ToResponse(created)
	s.dispatcher.Emit(ws.EmployeeChannel(employee.ID), ws.Event{
		Type: ws.EventTaskAssigned,
		Data: map[string]interface{}{
			"message": "You have been assigned a new task",
			"task":    resp,
		},
	})

	return resp, nil
}

// UpdateStatus transitions a task's status. Only the assignee may do
// this, any valid status may follow any other, and no event is emitted.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, employee auth.Principal, taskID string, req task.UpdateStatusRequest) (task.Response, error) {
	if !task.ValidStatus(req.Status) {
		return task.Response{}, task.ErrInvalidStatus
	}

	existing, err := s.taskRepo.GetByID(ctx, employee.CompanyID, taskID)
	if err != nil {
		return task.Response{}, err
	}
	if existing.AssignedToID != employee.UserID {
		return task.Response{}, task.ErrNotAssignee
	}

	var completedAt *time.Time
	if req.Status == task.StatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	updated, err := s.taskRepo.UpdateStatus(ctx, employee.CompanyID, taskID, req.Status, completedAt)
	if err != nil {
		return task.Response{}, err
	}

	return task.ToResponse(updated), nil
}

// ListAssigned implements Service.
func (s *TaskServiceImpl) ListAssigned(ctx context.Context, employee auth.Principal) ([]task.Response, error) {
	tasks, err := s.taskRepo.ListByAssignee(ctx, employee.CompanyID, employee.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(tasks), nil
}

// ListCreated implements Service.
func (s *TaskServiceImpl) ListCreated(ctx context.Context, lead auth.Principal) ([]task.Response, error) {
	tasks, err := s.taskRepo.ListByAssigner(ctx, lead.CompanyID, lead.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(tasks), nil
}

func toResponses(tasks []task.Task) []task.Response {
	responses := make([]task.Response, len(tasks))
	for i, t := range tasks {
		responses[i] = task.ToResponse(t)
	}
	return responses
}
