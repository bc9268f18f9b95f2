package v1

import (
	"errors"
	"io"
	"net/http"

	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/filter"
	"talenthub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxImportBytes caps CSV upload size at 2 MiB.
const maxImportBytes = 2 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminJobHandler struct {
	jobUC    domain.JobUsecase
	importUC domain.ImportUsecase
	exportUC domain.ExportUsecase
}

func NewAdminJobHandler(admin *gin.RouterGroup, jobUC domain.JobUsecase, importUC domain.ImportUsecase, exportUC domain.ExportUsecase) {
	handler := &AdminJobHandler{jobUC: jobUC, importUC: importUC, exportUC: exportUC}

	jobs := admin.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.POST("", handler.Create)
		jobs.PATCH("/:id/status", handler.ToggleStatus)
		jobs.DELETE("/:id", handler.Delete)
		jobs.POST("/import", handler.Import)
	}

	export := admin.Group("/export")
	{
		export.GET("/jobs", handler.ExportJobs)
	}
}

type createJobRequest struct {
	ClientName        string   `json:"clientName" binding:"required"`
	PositionName      string   `json:"positionName" binding:"required"`
	Location          string   `json:"location" binding:"required"`
	ExpMin            int      `json:"expMin" binding:"min=0"`
	ExpMax            *int     `json:"expMax"`
	TechStack         []string `json:"techStack" binding:"required"`
	Domain            string   `json:"domain" binding:"required"`
	NumberOfPositions int      `json:"numberOfPositions"`
}

// Create godoc
// @Summary      Post a new job
// @Tags         admin-jobs
// @Accept       json
// @Produce      json
// @Param        job  body      createJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/jobs [post]
// @Security     BearerAuth
func (h *AdminJobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	job := &domain.Job{
		ClientName:        req.ClientName,
		PositionName:      req.PositionName,
		Location:          req.Location,
		ExpMin:            req.ExpMin,
		ExpMax:            req.ExpMax,
		TechStack:         req.TechStack,
		Domain:            req.Domain,
		NumberOfPositions: req.NumberOfPositions,
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List all jobs
// @Description  Every job regardless of status, with application counts,
// @Description  free-text search and company/position facets
// @Tags         admin-jobs
// @Produce      json
// @Param        q         query  string  false  "Free text search"
// @Param        company   query  string  false  "Company facet (or 'all')"
// @Param        position  query  string  false  "Position facet (or 'all')"
// @Success      200  {object}  response.Response
// @Router       /admin/jobs [get]
// @Security     BearerAuth
func (h *AdminJobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
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

// GetDetails godoc
// @Summary      Get job details
// @Tags         admin-jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id} [get]
func (h *AdminJobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job fetched", job)
}

// ToggleStatus godoc
// @Summary      Toggle job status
// @Description  Flips a job between active and inactive
// @Tags         admin-jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *AdminJobHandler) ToggleStatus(c *gin.Context) {
	job, err := h.jobUC.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Removes the job and every application attached to it
// @Tags         admin-jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id} [delete]
// @Security     BearerAuth
func (h *AdminJobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJobCascade(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// Import godoc
// @Summary      Bulk import jobs from CSV
// @Description  Accepts a CSV payload either as a multipart file field named
// @Description  "file" or as the raw request body. The header row must match
// @Description  the published template exactly. On a mid-batch failure the
// @Description  rows before the failing one stay committed and the response
// @Description  reports how many made it.
// @Tags         admin-jobs
// @Accept       mpfd
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/jobs/import [post]
// @Security     BearerAuth
func (h *AdminJobHandler) Import(c *gin.Context) {
	payload, err := readImportPayload(c)
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	result, importErr := h.importUC.ImportJobs(c.Request.Context(), userID, payload)
	if importErr != nil {
		// A halted import still carries a partial result worth reporting.
		if result != nil && result.Processed > 0 {
			msg := "Import halted"
			var appErr *apperror.AppError
			if errors.As(importErr, &appErr) {
				msg = appErr.Message
			}
			response.Error(c, http.StatusInternalServerError, msg, result)
			return
		}
		c.Error(importErr)
		return
	}

	response.Success(c, http.StatusOK, "Import completed", result)
}

func readImportPayload(c *gin.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxImportBytes {
			return "", apperror.BadRequest("CSV file exceeds the 2MB limit")
		}
		f, err := file.Open()
		if err != nil {
			return "", apperror.Internal(err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxImportBytes))
		if err != nil {
			return "", apperror.Internal(err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		return "", apperror.Internal(err)
	}
	if len(data) == 0 {
		return "", apperror.BadRequest("Request contains no CSV payload")
	}
	return string(data), nil
}

// ExportJobs godoc
// @Summary      Export jobs as XLSX
// @Tags         admin-jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /admin/export/jobs [get]
// @Security     BearerAuth
func (h *AdminJobHandler) ExportJobs(c *gin.Context) {
	payload, filename, err := h.exportUC.ExportJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Download(c, filename, xlsxContentType, payload)
}
