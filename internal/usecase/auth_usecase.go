package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/live"
	"talenthub-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type authUsecase struct {
	userRepo     domain.UserRepository
	activityRepo domain.ActivityRepository
	hub          *live.Hub
	validate     *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, activityRepo domain.ActivityRepository, hub *live.Hub, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		hub:          hub,
		validate:     validate,
	}
}

// SyncIdentity reports whether the token's subject has a profile row. A
// missing row routes the client to profile creation; presence is the whole
// "onboarded" check.
func (uc *authUsecase) SyncIdentity(ctx context.Context, id string) (*domain.User, bool, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, apperror.Internal(err)
	}
	return user, true, nil
}

// profileRules mirrors the onboarding form: all profile fields are required
// before a user counts as onboarded.
type profileRules struct {
	Name             string `validate:"required"`
	Email            string `validate:"required,email"`
	PhoneNumber      string `validate:"required,valid_phone"`
	LinkedinURL      string `validate:"required,linkedin_url"`
	InterestedRoles  string `validate:"required"`
	ExplorationPhase string `validate:"required"`
}

func (uc *authUsecase) CreateProfile(ctx context.Context, user *domain.User) error {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	rules := profileRules{
		Name:             user.Name,
		Email:            user.Email,
		PhoneNumber:      deref(user.PhoneNumber),
		LinkedinURL:      deref(user.LinkedinURL),
		InterestedRoles:  deref(user.InterestedRoles),
		ExplorationPhase: deref(user.ExplorationPhase),
	}
	if err := uc.validate.Struct(rules); err != nil {
		return apperror.BadRequest("All profile fields are required; LinkedIn URL must be a valid profile link")
	}

	if _, err := uc.userRepo.GetByID(ctx, user.ID); err == nil {
		return apperror.Conflict("Profile already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}

	user.IsAdmin = false
	user.CreatedAt = time.Now()
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return apperror.Internal(err)
	}

	recordActivity(ctx, uc.activityRepo, uc.hub, domain.ActivityNewUser,
		fmt.Sprintf("%s joined TalentHub", user.Name),
		map[string]string{
			"userId":   user.ID,
			"userName": user.Name,
		})
	uc.hub.Notify(ctx, live.CollectionUsers)
	return nil
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
