package report

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ValidDecision reports whether s is a reviewer decision. PENDING is
// the submission state, never a decision.
func ValidDecision(s Status) bool {
	return s == StatusApproved || s == StatusRejected
}

type Report struct {
	ID        string
	CompanyID string
	// UserID is the employee who submitted the report.
	UserID    string
	TaskID    *string
	Content   string
	FileURL   *string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Editable reports whether the author may still change or delete the
// report. Once a team lead has decided, the report is frozen for the
// author; the reviewer may still re-decide.
func (r *Report) Editable() bool {
	return r.Status == StatusPending
}
