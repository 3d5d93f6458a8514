package report

import "time"

// ============= Request DTOs =============

type SubmitReportRequest struct {
	TaskID  *string `json:"task_id,omitempty"`
	Content string  `json:"content"`
	FileURL *string `json:"file_url,omitempty"`
}

type UpdateReportRequest struct {
	Content string  `json:"content"`
	FileURL *string `json:"file_url,omitempty"`
}

type ReviewRequest struct {
	Status Status `json:"status"`
}

// ============= Response DTOs =============

type Response struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TaskID    *string   `json:"task_id,omitempty"`
	Content   string    `json:"content"`
	FileURL   *string   `json:"file_url,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(r Report) Response {
	return Response{
		ID:        r.ID,
		UserID:    r.UserID,
		TaskID:    r.TaskID,
		Content:   r.Content,
		FileURL:   r.FileURL,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
