package http

import (
	"log/slog"
	"net/http"

	"github.com/workloop/workloop-backend-go/internal/handler/http/middleware"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
	fileService "github.com/workloop/workloop-backend-go/internal/service/file"
)

const maxUploadSize = 10 << 20 // 10 MB

type FileHandler interface {
	UploadReportAttachment(w http.ResponseWriter, r *http.Request)
}

type FileHandlerImpl struct {
	fileService fileService.FileService
}

func NewFileHandler(fileSvc fileService.FileService) FileHandler {
	return &FileHandlerImpl{fileService: fileSvc}
}

// UploadReportAttachment implements FileHandler.
func (h *FileHandlerImpl) UploadReportAttachment(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	fileURL, err := h.fileService.UploadReportAttachment(r.Context(), principal.UserID, file, header.Filename)
	if err != nil {
		slog.Error("Upload report attachment error", "error", err)
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, "Attachment uploaded successfully", map[string]string{"file_url": fileURL})
}
