package task

import "time"

// ============= Request DTOs =============

type AssignTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"` // RFC 3339
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// ============= Response DTOs =============

type Response struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Deadline     time.Time  `json:"deadline"`
	Status       Status     `json:"status"`
	AssignedToID string     `json:"assigned_to_id"`
	AssignedByID string     `json:"assigned_by_id"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func ToResponse(t Task) Response {
	return Response{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Deadline:     t.Deadline,
		Status:       t.Status,
		AssignedToID: t.AssignedToID,
		AssignedByID: t.AssignedByID,
		CreatedAt:    t.CreatedAt,
		CompletedAt:  t.CompletedAt,
	}
}
