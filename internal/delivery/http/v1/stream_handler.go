package v1

import (
	"context"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/filter"
	"talenthub-backend/internal/live"

	"github.com/gin-gonic/gin"
)

// StreamHandler serves the live views over Server-Sent Events. Each
// connection holds one View: a snapshot is pushed on connect, and again
// every time the hub signals that a backing collection changed. Filter
// params are fixed per connection from the query string; to change them
// the client reconnects, which mirrors how the views treat params as
// client-owned state that a remote update never resets.
type StreamHandler struct {
	hub     *live.Hub
	jobUC   domain.JobUsecase
	appUC   domain.ApplicationUsecase
	adminUC domain.AdminUsecase
}

func NewStreamHandler(protected *gin.RouterGroup, admin *gin.RouterGroup, hub *live.Hub, jobUC domain.JobUsecase, appUC domain.ApplicationUsecase, adminUC domain.AdminUsecase) {
	handler := &StreamHandler{hub: hub, jobUC: jobUC, appUC: appUC, adminUC: adminUC}

	protected.GET("/jobs/stream", handler.Jobs)

	stream := admin.Group("/stream")
	{
		stream.GET("/jobs", handler.AdminJobs)
		stream.GET("/users", handler.Users)
		stream.GET("/applicants", handler.Applicants)
		stream.GET("/activities", handler.Activities)
	}
}

// Jobs godoc
// @Summary      Live open positions
// @Description  SSE stream of the active job list, re-sent on every change
// @Tags         streams
// @Produce      text/event-stream
// @Param        q         query  string  false  "Free text search"
// @Param        company   query  string  false  "Company facet (or 'all')"
// @Param        position  query  string  false  "Position facet (or 'all')"
// @Router       /jobs/stream [get]
// @Security     BearerAuth
func (h *StreamHandler) Jobs(c *gin.Context) {
	view := live.NewView(h.jobUC.ListActiveJobs, filter.Jobs(), jobFilterParams(c))
	streamView(c, h.hub, view, live.CollectionJobs, live.CollectionApplications)
}

// AdminJobs streams every job regardless of status, counts included.
func (h *StreamHandler) AdminJobs(c *gin.Context) {
	view := live.NewView(h.jobUC.ListJobs, filter.Jobs(), jobFilterParams(c))
	streamView(c, h.hub, view, live.CollectionJobs, live.CollectionApplications)
}

// Users streams the user table for the admin dashboard.
func (h *StreamHandler) Users(c *gin.Context) {
	view := live.NewView(h.adminUC.ListUsers, filter.Users(), filter.Params{Query: c.Query("q")})
	streamView(c, h.hub, view, live.CollectionUsers)
}

// Applicants streams the joined application rows.
func (h *StreamHandler) Applicants(c *gin.Context) {
	view := live.NewView(h.appUC.ListAllWithDetails, filter.Applications(), jobFilterParams(c))
	streamView(c, h.hub, view, live.CollectionApplications, live.CollectionJobs, live.CollectionUsers)
}

// Activities streams the recent activity feed. No filtering applies.
func (h *StreamHandler) Activities(c *gin.Context) {
	load := func(ctx context.Context) ([]domain.Activity, error) {
		return h.adminUC.RecentActivities(ctx, 0)
	}
	view := live.NewView(load, filter.Spec[domain.Activity]{}, filter.Params{})
	streamView(c, h.hub, view, live.CollectionActivities)
}

type snapshotEvent[T any] struct {
	Items []T  `json:"items"`
	Total int  `json:"total"`
	Error bool `json:"error,omitempty"`
}

// streamView runs one SSE connection: initial snapshot, then a fresh
// snapshot per hub signal, until the client disconnects. Subscriptions to
// every backing collection are released on the way out; Release is
// idempotent so the deferred calls are safe no matter how the loop exits.
func streamView[T any](c *gin.Context, hub *live.Hub, view *live.View[T], collections ...string) {
	ctx := c.Request.Context()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if err := view.Refresh(ctx); err != nil {
		c.Error(err)
		return
	}

	// Fan the per-collection signals into one channel. Buffered by one and
	// drained before each refresh, so bursts coalesce into a single reload.
	signals := make(chan struct{}, 1)
	for _, collection := range collections {
		ch, sub := hub.Subscribe(collection)
		defer sub.Release()
		go func(ch <-chan struct{}) {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ch:
					select {
					case signals <- struct{}{}:
					default:
					}
				}
			}
		}(ch)
	}

	send := func() {
		visible := view.Visible()
		c.SSEvent("snapshot", snapshotEvent[T]{Items: visible, Total: len(visible)})
		c.Writer.Flush()
	}
	send()

	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			if err := view.Refresh(ctx); err != nil {
				// Keep the last good snapshot on a transient load failure;
				// the next signal retries.
				if ctx.Err() != nil {
					return
				}
				c.SSEvent("snapshot", snapshotEvent[T]{Error: true})
				c.Writer.Flush()
				continue
			}
			send()
		}
	}
}
