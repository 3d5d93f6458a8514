package task

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrNotAssignee      = errors.New("task is not assigned to this employee")
	ErrNotManagedByLead = errors.New("employee does not report to this team lead")
)
