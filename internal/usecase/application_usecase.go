package usecase

import (
	"context"
	"fmt"
	"time"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/live"
	"talenthub-backend/pkg/apperror"
)

type applicationUsecase struct {
	appRepo      domain.ApplicationRepository
	jobRepo      domain.JobRepository
	activityRepo domain.ActivityRepository
	hub          *live.Hub
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository, activityRepo domain.ActivityRepository, hub *live.Hub) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:      appRepo,
		jobRepo:      jobRepo,
		activityRepo: activityRepo,
		hub:          hub,
	}
}

// ApplyToJob creates one pending application for (userID, jobID). Uniqueness
// is an application-level check, not a storage constraint: two racing
// sessions can still both insert, and the store keeps both (last-write-wins
// posture, no compare-and-swap).
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, userID, jobID string) (*domain.Application, error) {
	// 1. Validate job exists and is active
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("Cannot apply to an inactive job")
	}

	// 2. Check for duplicate application
	exists, err := uc.appRepo.CheckExists(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	// 3. Create application
	app := &domain.Application{
		UserID:    userID,
		JobID:     jobID,
		AppliedAt: time.Now(),
		Status:    domain.ApplicationStatusPending,
	}
	if err := uc.appRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	// 4. Append audit record (advisory, never fails the apply)
	recordActivity(ctx, uc.activityRepo, uc.hub, domain.ActivityNewApplication,
		fmt.Sprintf("New application for %s", job.PositionName),
		map[string]string{
			"userId": userID,
			"jobId":  jobID,
		})
	uc.hub.Notify(ctx, live.CollectionApplications)

	return app, nil
}

func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	return uc.appRepo.FetchByUserID(ctx, userID)
}

func (uc *applicationUsecase) ListAllWithDetails(ctx context.Context) ([]domain.ApplicationWithDetails, error) {
	return uc.appRepo.FetchAllWithDetails(ctx)
}

// UpdateStatus moves an application out of pending. Transitions are
// forward-only: accepted and rejected are terminal, and nothing ever goes
// back to pending.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, id string, status string) error {
	if status != domain.ApplicationStatusAccepted && status != domain.ApplicationStatusRejected {
		return apperror.BadRequest("Invalid status. Must be: accepted or rejected")
	}

	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Application not found")
	}
	if app.Status != domain.ApplicationStatusPending {
		return apperror.BadRequest("Application has already been decided")
	}

	if err := uc.appRepo.UpdateStatus(ctx, id, status); err != nil {
		return apperror.Internal(err)
	}
	uc.hub.Notify(ctx, live.CollectionApplications)
	return nil
}
