package usecase

import (
	"context"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/live"
	"talenthub-backend/pkg/apperror"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 50
)

type adminUsecase struct {
	userRepo     domain.UserRepository
	jobRepo      domain.JobRepository
	appRepo      domain.ApplicationRepository
	activityRepo domain.ActivityRepository
	hub          *live.Hub
}

func NewAdminUsecase(userRepo domain.UserRepository, jobRepo domain.JobRepository, appRepo domain.ApplicationRepository, activityRepo domain.ActivityRepository, hub *live.Hub) domain.AdminUsecase {
	return &adminUsecase{
		userRepo:     userRepo,
		jobRepo:      jobRepo,
		appRepo:      appRepo,
		activityRepo: activityRepo,
		hub:          hub,
	}
}

func (uc *adminUsecase) GetStats(ctx context.Context) (*domain.Stats, error) {
	totalUsers, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	activeJobs, err := uc.jobRepo.CountActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	applications, err := uc.appRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.Stats{
		TotalUsers:   totalUsers,
		ActiveJobs:   activeJobs,
		Applications: applications,
	}, nil
}

func (uc *adminUsecase) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return uc.activityRepo.FetchRecent(ctx, limit)
}

func (uc *adminUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.userRepo.FetchAll(ctx)
}

// SetAdmin grants or revokes the admin flag. Only an existing admin reaches
// this (middleware gate); the one extra rule here is that admins cannot
// revoke themselves, so the system never locks out its last administrator
// by accident.
func (uc *adminUsecase) SetAdmin(ctx context.Context, actorID, targetID string, grant bool) (*domain.User, error) {
	if !grant && actorID == targetID {
		return nil, apperror.BadRequest("You cannot revoke your own admin access")
	}

	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	if target.IsAdmin == grant {
		return target, nil
	}

	if err := uc.userRepo.SetAdmin(ctx, targetID, grant); err != nil {
		return nil, apperror.Internal(err)
	}
	target.IsAdmin = grant

	activityType := domain.ActivityAdminGranted
	message := "Admin status granted to user"
	if !grant {
		activityType = domain.ActivityAdminRevoked
		message = "Admin status revoked from user"
	}
	recordActivity(ctx, uc.activityRepo, uc.hub, activityType, message, map[string]string{
		"userId":  targetID,
		"actorId": actorID,
	})
	uc.hub.Notify(ctx, live.CollectionUsers)

	return target, nil
}
