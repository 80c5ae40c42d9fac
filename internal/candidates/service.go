package candidates

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/extract"
	"recruit-backend/internal/shared/storage/object"
	"recruit-backend/internal/shared/telemetry"
)

type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{Store: store, Repo: repo}
}

// Upload stores the file, extracts its text, and replaces the candidate's
// current CV. Extraction failures are tolerated; the CV is kept with empty
// text and scoring later falls back to a neutral read of the document.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (CV, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return CV{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return CV{}, err
	}

	text, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		telemetry.Error("cv.extract.failed", map[string]any{
			"err":      err.Error(),
			"user_id":  userID,
			"key":      storageKey,
			"mimeType": mimeType,
		})
		text = ""
	}

	cv := CV{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      fileName,
		StorageKey:    storageKey,
		MimeType:      mimeType,
		SizeBytes:     size,
		ExtractedText: text,
		CreatedAt:     time.Now().UTC(),
	}
	cv.UpdatedAt = cv.CreatedAt
	if err := s.Repo.Save(ctx, cv); err != nil {
		return CV{}, err
	}
	return cv, nil
}

func (s *Service) Current(ctx context.Context, userID string) (CV, error) {
	if strings.TrimSpace(userID) == "" {
		return CV{}, ErrInvalidInput
	}
	return s.Repo.GetByUser(ctx, userID)
}
