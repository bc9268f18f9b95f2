package domain

import (
	"context"
	"time"
)

// Activity type constants
const (
	ActivityNewJob         = "new_job"
	ActivityNewUser        = "new_user"
	ActivityNewApplication = "new_application"
	ActivityAdminGranted   = "admin_granted"
	ActivityAdminRevoked   = "admin_revoked"
)

// Activity is one record of the append-only audit log. Records are never
// mutated or deleted.
type Activity struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data,omitempty"`
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	FetchRecent(ctx context.Context, limit int) ([]Activity, error)
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers   int64 `json:"totalUsers"`
	ActiveJobs   int64 `json:"activeJobs"`
	Applications int64 `json:"applications"`
}

type AdminUsecase interface {
	GetStats(ctx context.Context) (*Stats, error)
	RecentActivities(ctx context.Context, limit int) ([]Activity, error)
	ListUsers(ctx context.Context) ([]User, error)
	SetAdmin(ctx context.Context, actorID, targetID string, grant bool) (*User, error)
}
