package domain

import (
	"context"
	"time"
)

// Application status constants. Transitions are forward-only: an
// application leaves pending for accepted or rejected and never returns.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application links a candidate to a job they applied to.
type Application struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	JobID     string    `json:"jobId"`
	AppliedAt time.Time `json:"appliedAt"`
	Status    string    `json:"status"`
}

// ApplicationWithDetails joins the candidate and job fields the admin
// applicants view renders and filters on.
type ApplicationWithDetails struct {
	Application
	UserName         string  `json:"userName"`
	UserEmail        string  `json:"userEmail"`
	UserAvatarSrc    *string `json:"userAvatarSrc,omitempty"`
	UserPhone        *string `json:"userPhone,omitempty"`
	UserLinkedinURL  *string `json:"userLinkedinUrl,omitempty"`
	InterestedRoles  *string `json:"interestedRoles,omitempty"`
	ExplorationPhase *string `json:"explorationPhase,omitempty"`
	ClientName       string  `json:"clientName"`
	PositionName     string  `json:"positionName"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	FetchByUserID(ctx context.Context, userID string) ([]Application, error)
	FetchAllWithDetails(ctx context.Context) ([]ApplicationWithDetails, error)
	CheckExists(ctx context.Context, jobID, userID string) (bool, error)
	// DeleteByJobID removes every application for a job; it runs before the
	// job row itself is deleted so readers never see an orphaned application.
	DeleteByJobID(ctx context.Context, jobID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	// CountByJob returns application counts keyed by job ID in one query,
	// instead of one lookup per job.
	CountByJob(ctx context.Context) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
}

type ApplicationUsecase interface {
	ApplyToJob(ctx context.Context, userID, jobID string) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)
	ListAllWithDetails(ctx context.Context) ([]ApplicationWithDetails, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
