package task

import "time"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ValidStatus reports whether s is a known task status. Transitions
// between valid statuses are unrestricted; the assignee may move a
// task backward as well as forward.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	Deadline    time.Time
	Status      Status
	// AssignedToID is an EMPLOYEE managed by AssignedByID (a TEAM_LEAD
	// in the same company).
	AssignedToID string
	AssignedByID string
	CreatedAt    time.Time
	// CompletedAt is stamped when status becomes COMPLETED and cleared
	// on any other transition.
	CompletedAt *time.Time
}
