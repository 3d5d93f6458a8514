package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/report"
	"github.com/workloop/workloop-backend-go/internal/handler/http/middleware"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
	reportService "github.com/workloop/workloop-backend-go/internal/service/report"
)

type ReportHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	ListForTeamLead(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService reportService.Service
}

func NewReportHandler(reportSvc reportService.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportSvc}
}

// Submit implements ReportHandler.
func (h *ReportHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var submitReq report.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	reportResponse, err := h.reportService.Submit(r.Context(), principal, submitReq)
	if err != nil {
		slog.Error("Submit report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report submitted successfully", reportResponse)
}

// Update implements ReportHandler.
func (h *ReportHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq report.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	reportID := chi.URLParam(r, "reportID")
	reportResponse, err := h.reportService.Update(r.Context(), principal, reportID, updateReq)
	if err != nil {
		slog.Error("Update report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report updated successfully", reportResponse)
}

// Delete implements ReportHandler.
func (h *ReportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reportID := chi.URLParam(r, "reportID")
	if err := h.reportService.Delete(r.Context(), principal, reportID); err != nil {
		slog.Error("Delete report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report deleted successfully", nil)
}

// Review implements ReportHandler.
func (h *ReportHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var reviewReq report.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	reportID := chi.URLParam(r, "reportID")
	reportResponse, err := h.reportService.Review(r.Context(), principal, reportID, reviewReq)
	if err != nil {
		slog.Error("Review report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report reviewed successfully", reportResponse)
}

// ListOwn implements ReportHandler.
func (h *ReportHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.reportService.ListOwn(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// ListForTeamLead implements ReportHandler.
func (h *ReportHandlerImpl) ListForTeamLead(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.reportService.ListForTeamLead(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}
