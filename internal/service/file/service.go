package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/workloop/workloop-backend-go/internal/pkg/storage"
)

type FileService interface {
	// UploadReportAttachment stores a report attachment and returns its
	// public URL, which the client then submits as the report's file_url.
	UploadReportAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var attachmentContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".txt":  "text/plain",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// UploadReportAttachment uploads a report attachment
func (s *fileServiceImpl) UploadReportAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := attachmentContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("invalid file type: only pdf, png, jpg, jpeg, txt, doc, docx allowed")
	}

	// Generate unique filename
	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s%s", uniqueID, ext)
	path := filepath.Join("reports", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return s.storage.GetURL(ctx, uploadedPath)
}

// DeleteFile removes a stored file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
