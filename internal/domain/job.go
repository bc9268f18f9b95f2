package domain

import (
	"context"
	"time"
)

// Job status constants
const (
	JobStatusActive   = "active"
	JobStatusInactive = "inactive"
)

// Job is a posting for one or more open positions at a client company.
// TotalApplications is derived from the applications collection, never
// stored authoritatively.
type Job struct {
	ID                string    `json:"id"`
	ClientName        string    `json:"clientName"`
	PositionName      string    `json:"positionName"`
	Location          string    `json:"location"`
	ExpMin            int       `json:"expMin"`
	ExpMax            *int      `json:"expMax"` // nil means unbounded
	TechStack         []string  `json:"techStack"`
	Domain            string    `json:"domain"`
	Status            string    `json:"status"` // active | inactive
	NumberOfPositions int       `json:"numberOfPositions"`
	CreatedBy         string    `json:"createdBy,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	TotalApplications int64     `json:"totalApplications"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	// FetchAll returns the full collection ordered by createdAt descending.
	FetchAll(ctx context.Context) ([]Job, error)
	FetchActive(ctx context.Context) ([]Job, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *Job) error
	GetJobDetails(ctx context.Context, id string) (*Job, error)
	// ListJobs returns the full collection with derived application counts.
	ListJobs(ctx context.Context) ([]Job, error)
	ListActiveJobs(ctx context.Context) ([]Job, error)
	ToggleStatus(ctx context.Context, id string) (*Job, error)
	DeleteJobCascade(ctx context.Context, id string) error
}
