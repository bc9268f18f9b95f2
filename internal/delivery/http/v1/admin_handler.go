package v1

import (
	"net/http"
	"strconv"

	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/filter"
	"talenthub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin.GET("/stats", handler.Stats)
	admin.GET("/activities", handler.Activities)
	admin.GET("/users", handler.Users)
	admin.PATCH("/users/:id/admin", handler.SetAdmin)
}

// Stats godoc
// @Summary      Dashboard stats
// @Description  Total users, active jobs and application counts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stats fetched", stats)
}

// Activities godoc
// @Summary      Recent activity feed
// @Tags         admin
// @Produce      json
// @Param        limit  query  int  false  "Max entries (default 10, cap 50)"
// @Success      200  {object}  response.Response
// @Router       /admin/activities [get]
// @Security     BearerAuth
func (h *AdminHandler) Activities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	activities, err := h.adminUC.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Activities fetched", activities)
}

// Users godoc
// @Summary      List users
// @Description  All users with free-text search over name and email
// @Tags         admin
// @Produce      json
// @Param        q  query  string  false  "Free text search"
// @Success      200  {object}  response.Response
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	visible := filter.Apply(users, filter.Params{Query: c.Query("q")}, filter.Users())

	response.Success(c, http.StatusOK, "Users fetched", gin.H{
		"users": visible,
		"total": len(visible),
	})
}

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// SetAdmin godoc
// @Summary      Grant or revoke admin access
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "User ID"
// @Param        body  body  setAdminRequest  true  "Admin flag"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/admin [patch]
// @Security     BearerAuth
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	var req setAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("is_admin is required"))
		return
	}

	actorID := c.GetString(string(domain.KeyUserID))

	user, err := h.adminUC.SetAdmin(c.Request.Context(), actorID, c.Param("id"), *req.IsAdmin)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Admin status updated", user)
}
