package importer

import (
	"context"

	"talenthub-backend/internal/domain"
)

// Progress reports how far a batch import has gotten.
type Progress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
}

// Runner persists drafts one at a time so the operator can watch progress
// and so a mid-batch failure leaves the earlier rows committed and visible
// rather than silently rolled back.
type Runner struct {
	Create     func(ctx context.Context, job *domain.Job) error
	OnProgress func(Progress) // optional, called after each successful persist
}

// Run stops at the first persistence failure and returns how many drafts
// were committed before it, together with that failure.
func (r *Runner) Run(ctx context.Context, drafts []domain.Job) (int, error) {
	total := len(drafts)
	for i := range drafts {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := r.Create(ctx, &drafts[i]); err != nil {
			return i, err
		}
		if r.OnProgress != nil {
			r.OnProgress(Progress{Processed: i + 1, Total: total})
		}
	}
	return total, nil
}
