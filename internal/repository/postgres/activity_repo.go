package postgres

import (
	"context"
	"encoding/json"

	"talenthub-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type activityRepo struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) domain.ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	data, err := json.Marshal(activity.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO activities (type, message, timestamp, data)
              VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRow(ctx, query,
		activity.Type, activity.Message, activity.Timestamp, data,
	).Scan(&activity.ID)
}

func (r *activityRepo) FetchRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	query := `SELECT id, type, message, timestamp, COALESCE(data, '{}'::jsonb) FROM activities ORDER BY timestamp DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		var data []byte
		if err := rows.Scan(&activity.ID, &activity.Type, &activity.Message, &activity.Timestamp, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &activity.Data); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}
