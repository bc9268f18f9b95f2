package postgres

import (
	"context"
	"errors"

	"talenthub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, client_name, position_name, location, exp_min, exp_max, tech_stack, domain, status, number_of_positions, COALESCE(created_by, ''), created_at`

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (client_name, position_name, location, exp_min, exp_max, tech_stack, domain, status, number_of_positions, created_by, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.ClientName, job.PositionName, job.Location, job.ExpMin, job.ExpMax,
		pq.Array(job.TechStack), job.Domain, job.Status, job.NumberOfPositions,
		job.CreatedBy, job.CreatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) FetchAll(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	return r.fetch(ctx, query)
}

func (r *jobRepo) FetchActive(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 ORDER BY created_at DESC`
	return r.fetch(ctx, query, domain.JobStatusActive)
}

func (r *jobRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, domain.JobStatusActive).Scan(&count)
	return count, err
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var techStack []string
	err := row.Scan(
		&job.ID, &job.ClientName, &job.PositionName, &job.Location,
		&job.ExpMin, &job.ExpMax, pq.Array(&techStack), &job.Domain,
		&job.Status, &job.NumberOfPositions, &job.CreatedBy, &job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.TechStack = techStack
	return &job, nil
}
