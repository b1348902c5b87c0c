package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

// BlobStore persists uploaded files and reports their public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	// Check verifies the store is reachable and writable.
	Check(ctx context.Context) error
}

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// UploadResult is the response of a successful upload.
type UploadResult struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// UploadService validates and stores team logos.
type UploadService struct {
	Deps
	store   BlobStore
	maxSize int64
}

func NewUploadService(deps Deps, store BlobStore, maxSize int64) *UploadService {
	return &UploadService{Deps: deps.withDefaults(), store: store, maxSize: maxSize}
}

// UploadLogo sniffs the content type and stores jpeg, png or gif images up to maxSize.
func (s *UploadService) UploadLogo(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to read upload", err)
	}
	if len(data) == 0 {
		return nil, domainErrors.NewValidationError(apperrors.FieldError{Field: "logo", Message: "file is empty"})
	}
	if int64(len(data)) > s.maxSize {
		return nil, domainErrors.NewValidationError(apperrors.FieldError{
			Field:   "logo",
			Message: fmt.Sprintf("file must be at most %d MB", s.maxSize/(1024*1024)),
		})
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, domainErrors.NewValidationError(apperrors.FieldError{
			Field:   "logo",
			Message: "only JPEG, PNG and GIF images are allowed",
		})
	}

	key := uuid.NewString() + mtype.Extension()
	url, err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mtype.String())
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to store upload", err)
	}

	s.Logger.Info("Logo uploaded",
		zap.String("key", key),
		zap.String("original_name", filename),
		zap.String("content_type", mtype.String()),
		zap.Int("size", len(data)))

	return &UploadResult{Message: "File uploaded successfully", URL: url}, nil
}
