package report

import (
	"context"

	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/report"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/validator"
	"github.com/workloop/workloop-backend-go/internal/pkg/ws"
)

type Service interface {
	Submit(ctx context.Context, employee auth.Principal, req report.SubmitReportRequest) (report.Response, error)
	Update(ctx context.Context, employee auth.Principal, reportID string, req report.UpdateReportRequest) (report.Response, error)
	Delete(ctx context.Context, employee auth.Principal, reportID string) error
	Review(ctx context.Context, lead auth.Principal, reportID string, req report.ReviewRequest) (report.Response, error)
	ListOwn(ctx context.Context, employee auth.Principal) ([]report.Response, error)
	ListForTeamLead(ctx context.Context, lead auth.Principal) ([]report.Response, error)
}

type ReportServiceImpl struct {
	reportRepo report.Repository
	userRepo   user.Repository
	dispatcher ws.Dispatcher
}

func NewReportService(reportRepo report.Repository, userRepo user.Repository, dispatcher ws.Dispatcher) Service {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// Submit implements Service.
func (s *ReportServiceImpl) Submit(ctx context.Context, employee auth.Principal, req report.SubmitReportRequest) (report.Response, error) {
	if validator.IsEmpty(req.Content) {
		return report.Response{}, report.ErrMissingContent
	}

	created, err := s.reportRepo.Create(ctx, report.Report{
		CompanyID: employee.CompanyID,
		UserID:    employee.UserID,
		TaskID:    req.TaskID,
		Content:   req.Content,
		FileURL:   req.FileURL,
		Status:    report.StatusPending,
	})
	if err != nil {
		return report.Response{}, err
	}

	return report.ToResponse(created), nil
}

// Update implements Service. Authors may edit only while the report is
// still PENDING; a reviewed report is frozen for them.
func (s *ReportServiceImpl) Update(ctx context.Context, employee auth.Principal, reportID string, req report.UpdateReportRequest) (report.Response, error) {
	if validator.IsEmpty(req.Content) {
		return report.Response{}, report.ErrMissingContent
	}

	existing, err := s.reportRepo.GetByID(ctx, employee.CompanyID, reportID)
	if err != nil {
		return report.Response{}, err
	}
	if existing.UserID != employee.UserID {
		return report.Response{}, report.ErrNotAuthor
	}
	if !existing.Editable() {
		return report.Response{}, report.ErrAlreadyReviewed
	}

	updated, err := s.reportRepo.Update(ctx, employee.CompanyID, reportID, req.Content, req.FileURL)
	if err != nil {
		return report.Response{}, err
	}

	return report.ToResponse(updated), nil
}

// Delete implements Service. Same ownership and PENDING guard as Update.
func (s *ReportServiceImpl) Delete(ctx context.Context, employee auth.Principal, reportID string) error {
	existing, err := s.reportRepo.GetByID(ctx, employee.CompanyID, reportID)
	if err != nil {
		return err
	}
	if existing.UserID != employee.UserID {
		return report.ErrNotAuthor
	}
	if !existing.Editable() {
		return report.ErrAlreadyReviewed
	}

	return s.reportRepo.Delete(ctx, employee.CompanyID, reportID)
}

// Review decides a report and notifies its author. Re-review is
// allowed and notifies again.
func (s *ReportServiceImpl) Review(ctx context.Context, lead auth.Principal, reportID string, req report.ReviewRequest) (report.Response, error) {
	if !report.ValidDecision(req.Status) {
		return report.Response{}, report.ErrInvalidDecision
	}

	existing, err := s.reportRepo.GetByID(ctx, lead.CompanyID, reportID)
	if err != nil {
		return report.Response{}, err
	}

	author, err := s.userRepo.GetByID(ctx, lead.CompanyID, existing.UserID)
	if err != nil {
		return report.Response{}, err
	}
	if !author.ReportsTo(lead.UserID) {
		return report.Response{}, report.ErrNotManagedByLead
	}

	updated, err := s.reportRepo.UpdateStatus(ctx, lead.CompanyID, reportID, req.Status)
	if err != nil {
		return report.Response{}, err
	}

	resp := report.ToResponse(updated)
	s.dispatcher.Emit(ws.EmployeeChannel(author.ID), ws.Event{
		Type: ws.EventReportReviewed,
		Data: map[string]interface{}{
			"message": "Your report has been reviewed",
			"report":  resp,
		},
	})

	return resp, nil
}

// ListOwn implements Service.
func (s *ReportServiceImpl) ListOwn(ctx context.Context, employee auth.Principal) ([]report.Response, error) {
	reports, err := s.reportRepo.ListByAuthor(ctx, employee.CompanyID, employee.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(reports), nil
}

// ListForTeamLead implements Service.
func (s *ReportServiceImpl) ListForTeamLead(ctx context.Context, lead auth.Principal) ([]report.Response, error) {
	reports, err := s.reportRepo.ListByTeamLead(ctx, lead.CompanyID, lead.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(reports), nil
}

func toResponses(reports []report.Report) []report.Response {
	responses := make([]report.Response, len(reports))
	for i, r := range reports {
		responses[i] = report.ToResponse(r)
	}
	return responses
}
