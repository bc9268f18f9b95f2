package usecase

import (
	"context"
	"errors"
	"fmt"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/importer"
	"talenthub-backend/internal/live"
	"talenthub-backend/pkg/apperror"
	"talenthub-backend/pkg/logger"
	"talenthub-backend/pkg/storage"
)

type importUsecase struct {
	jobRepo domain.JobRepository
	hub     *live.Hub
	archive *storage.Archive // nil when archiving is not configured
}

func NewImportUsecase(jobRepo domain.JobRepository, hub *live.Hub, archive *storage.Archive) domain.ImportUsecase {
	return &importUsecase{
		jobRepo: jobRepo,
		hub:     hub,
		archive: archive,
	}
}

// ImportJobs parses the payload and persists drafts one at a time. A header
// mismatch rejects the whole payload before any write; a persistence
// failure mid-batch halts the import with the earlier rows committed, and
// the result tells the operator exactly how many made it.
func (uc *importUsecase) ImportJobs(ctx context.Context, userID string, rawCSV string) (*domain.ImportResult, error) {
	drafts, err := importer.Parse(rawCSV)
	if err != nil {
		var formatErr *importer.FormatError
		if errors.As(err, &formatErr) {
			return nil, apperror.BadRequest(formatErr.Error())
		}
		return nil, apperror.Internal(err)
	}
	if len(drafts) == 0 {
		return nil, apperror.BadRequest("CSV contains no job rows")
	}

	result := &domain.ImportResult{Total: len(drafts)}

	// Best-effort archive of the exact uploaded bytes.
	if uc.archive != nil {
		key, err := uc.archive.StoreImport(ctx, userID, rawCSV)
		if err != nil {
			logger.Log.Warn("Failed to archive import payload", "error", err)
		} else {
			result.ArchiveKey = key
		}
	}

	runner := &importer.Runner{
		Create: func(ctx context.Context, job *domain.Job) error {
			job.CreatedBy = userID
			return uc.jobRepo.Create(ctx, job)
		},
		OnProgress: func(p importer.Progress) {
			result.Processed = p.Processed
		},
	}

	processed, runErr := runner.Run(ctx, drafts)
	result.Processed = processed

	if processed > 0 {
		uc.hub.Notify(ctx, live.CollectionJobs)
	}
	if runErr != nil {
		return result, apperror.New(500,
			fmt.Sprintf("Import halted after %d of %d jobs", processed, result.Total), runErr)
	}
	return result, nil
}
