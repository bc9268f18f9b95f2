package usecase

import (
	"context"
	"fmt"
	"time"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/live"
	"talenthub-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	appRepo      domain.ApplicationRepository
	activityRepo domain.ActivityRepository
	hub          *live.Hub
}

func NewJobUsecase(jobRepo domain.JobRepository, appRepo domain.ApplicationRepository, activityRepo domain.ActivityRepository, hub *live.Hub) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		appRepo:      appRepo,
		activityRepo: activityRepo,
		hub:          hub,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	// Business validation
	if job.ClientName == "" || job.PositionName == "" || job.Location == "" || job.Domain == "" {
		return apperror.BadRequest("Client name, position name, location and domain are required")
	}
	if job.ExpMin < 0 {
		return apperror.BadRequest("Minimum experience cannot be negative")
	}
	if job.ExpMax != nil && *job.ExpMax < job.ExpMin {
		return apperror.BadRequest("Maximum experience cannot be less than minimum experience")
	}
	if len(job.TechStack) == 0 {
		return apperror.BadRequest("Tech stack is required")
	}
	if job.NumberOfPositions < 1 {
		job.NumberOfPositions = 1
	}

	job.Status = domain.JobStatusActive
	job.CreatedBy = userID
	job.CreatedAt = time.Now()
	job.TotalApplications = 0

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}

	recordActivity(ctx, u.activityRepo, u.hub, domain.ActivityNewJob,
		fmt.Sprintf("Position: %s was just posted", job.PositionName),
		map[string]string{
			"jobId":        job.ID,
			"positionName": job.PositionName,
			"clientName":   job.ClientName,
		})
	u.hub.Notify(ctx, live.CollectionJobs)
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	counts, err := u.appRepo.CountByJob(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	job.TotalApplications = counts[job.ID]
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.withCounts(ctx, jobs)
}

func (u *jobUsecase) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchActive(ctx)
	if err != nil {
		return nil, err
	}
	return u.withCounts(ctx, jobs)
}

// withCounts attaches the derived application count to each job from a
// single aggregate query.
func (u *jobUsecase) withCounts(ctx context.Context, jobs []domain.Job) ([]domain.Job, error) {
	counts, err := u.appRepo.CountByJob(ctx)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].TotalApplications = counts[jobs[i].ID]
	}
	return jobs, nil
}

func (u *jobUsecase) ToggleStatus(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}

	newStatus := domain.JobStatusInactive
	verb := "deactivated"
	if job.Status == domain.JobStatusInactive {
		newStatus = domain.JobStatusActive
		verb = "activated"
	}

	if err := u.jobRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, apperror.Internal(err)
	}
	job.Status = newStatus

	recordActivity(ctx, u.activityRepo, u.hub, domain.ActivityNewJob,
		fmt.Sprintf("Position: %s was %s", job.PositionName, verb),
		map[string]string{
			"jobId":        job.ID,
			"positionName": job.PositionName,
		})
	u.hub.Notify(ctx, live.CollectionJobs)
	return job, nil
}

// DeleteJobCascade removes every application referencing the job before the
// job itself, so a concurrent reader never observes an orphaned
// application. The two deletes are sequential, not atomic; the narrow
// window where the job exists with zero applications is accepted.
func (u *jobUsecase) DeleteJobCascade(ctx context.Context, id string) error {
	if _, err := u.jobRepo.GetByID(ctx, id); err != nil {
		return apperror.NotFound("Job not found")
	}

	if _, err := u.appRepo.DeleteByJobID(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}

	u.hub.Notify(ctx, live.CollectionApplications)
	u.hub.Notify(ctx, live.CollectionJobs)
	return nil
}
