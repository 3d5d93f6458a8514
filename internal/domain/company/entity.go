package company

import "time"

// Company is the tenant boundary. Every user, task, report and chat
// message belongs to exactly one company.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
