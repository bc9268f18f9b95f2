package postgres

import (
	"context"
	"errors"

	"talenthub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (user_id, job_id, applied_at, status)
              VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRow(ctx, query,
		app.UserID, app.JobID, app.AppliedAt, app.Status,
	).Scan(&app.ID)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT id, user_id, job_id, applied_at, status FROM applications WHERE id = $1`
	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.UserID, &app.JobID, &app.AppliedAt, &app.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) FetchByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT id, user_id, job_id, applied_at, status FROM applications WHERE user_id = $1 ORDER BY applied_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(&app.ID, &app.UserID, &app.JobID, &app.AppliedAt, &app.Status); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// FetchAllWithDetails joins the candidate and job fields the admin
// applicants page renders. Applications whose job or user has since
// disappeared are excluded rather than half-populated.
func (r *applicationRepo) FetchAllWithDetails(ctx context.Context) ([]domain.ApplicationWithDetails, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.applied_at, a.status,
			u.name, u.email, u.avatar_src, u.phone_number, u.linkedin_url,
			u.interested_roles, u.exploration_phase,
			j.client_name, j.position_name
		FROM applications a
		JOIN users u ON a.user_id = u.id
		JOIN jobs j ON a.job_id = j.id
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.ApplicationWithDetails
	for rows.Next() {
		var app domain.ApplicationWithDetails
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.JobID, &app.AppliedAt, &app.Status,
			&app.UserName, &app.UserEmail, &app.UserAvatarSrc, &app.UserPhone,
			&app.UserLinkedinURL, &app.InterestedRoles, &app.ExplorationPhase,
			&app.ClientName, &app.PositionName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) CheckExists(ctx context.Context, jobID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) DeleteByJobID(ctx context.Context, jobID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByJob aggregates application counts by job in a single GROUP BY
// instead of one round-trip per job.
func (r *applicationRepo) CountByJob(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id, COUNT(*) FROM applications GROUP BY job_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var jobID string
		var count int64
		if err := rows.Scan(&jobID, &count); err != nil {
			return nil, err
		}
		counts[jobID] = count
	}
	return counts, rows.Err()
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	return count, err
}
