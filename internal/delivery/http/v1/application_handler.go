package v1

import (
	"net/http"

	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/filter"
	"talenthub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC    domain.ApplicationUsecase
	exportUC domain.ExportUsecase
}

func NewApplicationHandler(admin *gin.RouterGroup, appUC domain.ApplicationUsecase, exportUC domain.ExportUsecase) {
	handler := &ApplicationHandler{appUC: appUC, exportUC: exportUC}

	admin.GET("/applicants", handler.List)
	admin.PATCH("/applications/:id/status", handler.UpdateStatus)
	admin.GET("/export/applications", handler.Export)
}

// List godoc
// @Summary      List applicants
// @Description  Every application joined with candidate and job details,
// @Description  with free-text search and company/position facets
// @Tags         admin-applicants
// @Produce      json
// @Param        q         query  string  false  "Free text search"
// @Param        company   query  string  false  "Company facet (or 'all')"
// @Param        position  query  string  false  "Position facet (or 'all')"
// @Success      200  {object}  response.Response
// @Router       /admin/applicants [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.appUC.ListAllWithDetails(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	params := jobFilterParams(c)
	spec := filter.Applications()
	visible := filter.Apply(apps, params, spec)

	response.Success(c, http.StatusOK, "Applicants fetched", gin.H{
		"applicants": visible,
		"total":      len(visible),
		"facets": map[string][]string{
			filter.FacetCompany:  filter.Options(apps, params, spec, filter.FacetCompany),
			filter.FacetPosition: filter.Options(apps, params, spec, filter.FacetPosition),
		},
	})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// UpdateStatus godoc
// @Summary      Decide an application
// @Description  Moves a pending application to accepted or rejected. Decided
// @Description  applications are terminal.
// @Tags         admin-applicants
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Application ID"
// @Param        body  body  updateStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /admin/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("status must be accepted or rejected"))
		return
	}

	if err := h.appUC.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", nil)
}

// Export godoc
// @Summary      Export applications as XLSX
// @Tags         admin-applicants
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /admin/export/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	payload, filename, err := h.exportUC.ExportApplications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Download(c, filename, xlsxContentType, payload)
}
