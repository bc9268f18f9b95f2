package usecase

import (
	"context"
	"time"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/live"
	"talenthub-backend/pkg/logger"
)

// recordActivity appends one audit record after a committed primary
// mutation. The audit log is advisory: a failed append is logged and
// swallowed so the already-committed mutation is never reported as failed.
func recordActivity(ctx context.Context, repo domain.ActivityRepository, hub *live.Hub, activityType, message string, data map[string]string) {
	activity := &domain.Activity{
		Type:      activityType,
		Message:   message,
		Timestamp: time.Now(),
		Data:      data,
	}
	if err := repo.Create(ctx, activity); err != nil {
		logger.Log.Warn("Failed to record activity", "type", activityType, "error", err)
		return
	}
	hub.Notify(ctx, live.CollectionActivities)
}
