package report

import "errors"

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidDecision  = errors.New("review status must be APPROVED or REJECTED")
	ErrNotAuthor        = errors.New("only the report author may modify it")
	ErrAlreadyReviewed  = errors.New("report has already been reviewed")
	ErrMissingContent   = errors.New("content is required")
	ErrNotManagedByLead = errors.New("report author does not report to this team lead")
)
