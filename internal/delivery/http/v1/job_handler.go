package v1

import (
	"net/http"
	"time"

	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/filter"
	"talenthub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
	appUC domain.ApplicationUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase, appUC domain.ApplicationUsecase) {
	handler := &JobHandler{jobUC: jobUC, appUC: appUC}

	// PUBLIC routes - active jobs only (server-side enforced)
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("/public", handler.PublicList)
		publicJobs.GET("/public/:id", handler.PublicGetDetails)
	}

	// PROTECTED routes
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.GET("", handler.List)
		protectedJobs.POST("/:id/apply", handler.Apply)
	}
	protected.GET("/applications/me", handler.MyApplications)
}

// jobFilterParams reads the shared filter inputs from the query string.
// Missing facet params mean "all".
func jobFilterParams(c *gin.Context) filter.Params {
	return filter.Params{
		Query: c.Query("q"),
		Facets: map[string]string{
			filter.FacetCompany:  c.DefaultQuery("company", filter.All),
			filter.FacetPosition: c.DefaultQuery("position", filter.All),
		},
	}
}

type jobListResponse struct {
	Jobs      []domain.Job        `json:"jobs"`
	Total     int                 `json:"total"`
	Facets    map[string][]string `json:"facets"`
	AppliedTo []string            `json:"appliedTo,omitempty"`
}

// facetOptions derives the selectable values for each facet, each restricted
// by the selections upstream of it.
func facetOptions(jobs []domain.Job, params filter.Params) map[string][]string {
	spec := filter.Jobs()
	return map[string][]string{
		filter.FacetCompany:  filter.Options(jobs, params, spec, filter.FacetCompany),
		filter.FacetPosition: filter.Options(jobs, params, spec, filter.FacetPosition),
	}
}

// PublicList godoc
// @Summary      List open positions
// @Description  Active jobs with free-text search and company/position facets
// @Tags         jobs
// @Produce      json
// @Param        q         query  string  false  "Free text search"
// @Param        company   query  string  false  "Company facet (or 'all')"
// @Param        position  query  string  false  "Position facet (or 'all')"
// @Success      200  {object}  response.Response
// @Router       /jobs/public [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	jobs, err := h.jobUC.ListActiveJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	params := jobFilterParams(c)
	visible := filter.Apply(jobs, params, filter.Jobs())

	response.Success(c, http.StatusOK, "Jobs fetched", jobListResponse{
		Jobs:   visible,
		Total:  len(visible),
		Facets: facetOptions(jobs, params),
	})
}

// PublicGetDetails godoc
// @Summary      Get open position details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/public/{id} [get]
func (h *JobHandler) PublicGetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if job.Status != domain.JobStatusActive {
		c.Error(apperror.NotFound("Job not found"))
		return
	}
	response.Success(c, http.StatusOK, "Job fetched", job)
}

// List godoc
// @Summary      List jobs for the signed-in candidate
// @Description  Active jobs with the caller's applications folded in. The
// @Description  view param narrows to jobs posted in the last 24 hours (new)
// @Description  or jobs already applied to (applied).
// @Tags         jobs
// @Produce      json
// @Param        q         query  string  false  "Free text search"
// @Param        company   query  string  false  "Company facet (or 'all')"
// @Param        position  query  string  false  "Position facet (or 'all')"
// @Param        view      query  string  false  "all | new | applied"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListActiveJobs(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.appUC.GetMyApplications(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}
	applied := make(map[string]bool, len(apps))
	appliedIDs := make([]string, 0, len(apps))
	for _, app := range apps {
		applied[app.JobID] = true
		appliedIDs = append(appliedIDs, app.JobID)
	}

	switch c.DefaultQuery("view", "all") {
	case "new":
		// Posted within the last 24 hours.
		cutoff := time.Now().Add(-24 * time.Hour)
		kept := jobs[:0]
		for _, j := range jobs {
			if j.CreatedAt.After(cutoff) {
				kept = append(kept, j)
			}
		}
		jobs = kept
	case "applied":
		kept := jobs[:0]
		for _, j := range jobs {
			if applied[j.ID] {
				kept = append(kept, j)
			}
		}
		jobs = kept
	case "all":
	default:
		c.Error(apperror.BadRequest("view must be one of: all, new, applied"))
		return
	}

	params := jobFilterParams(c)
	visible := filter.Apply(jobs, params, filter.Jobs())

	response.Success(c, http.StatusOK, "Jobs fetched", jobListResponse{
		Jobs:      visible,
		Total:     len(visible),
		Facets:    facetOptions(jobs, params),
		AppliedTo: appliedIDs,
	})
}

// Apply godoc
// @Summary      Apply to a job
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *JobHandler) Apply(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.appUC.ApplyToJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// MyApplications godoc
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /applications/me [get]
// @Security     BearerAuth
func (h *JobHandler) MyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.appUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications fetched", apps)
}
