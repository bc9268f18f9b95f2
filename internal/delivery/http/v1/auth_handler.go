package v1

import (
	"net/http"

	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/internal/domain"
	"talenthub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	protected.POST("/auth/sync", handler.Sync)

	users := protected.Group("/users")
	{
		users.POST("/profile", handler.CreateProfile)
		users.GET("/me", handler.Me)
	}
}

type syncResponse struct {
	Onboarded bool         `json:"onboarded"`
	User      *domain.User `json:"user,omitempty"`
}

// Sync godoc
// @Summary      Sync identity
// @Description  Report whether the token's subject has completed onboarding
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/sync [post]
// @Security     BearerAuth
func (h *AuthHandler) Sync(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, onboarded, err := h.authUC.SyncIdentity(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Identity synced", syncResponse{
		Onboarded: onboarded,
		User:      user,
	})
}

type createProfileRequest struct {
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	AvatarSrc        *string `json:"avatar_src"`
	PhoneNumber      string  `json:"phone_number" binding:"required"`
	LinkedinURL      string  `json:"linkedin_url" binding:"required"`
	InterestedRoles  string  `json:"interested_roles" binding:"required"`
	ExplorationPhase string  `json:"exploration_phase" binding:"required"`
}

// CreateProfile godoc
// @Summary      Complete onboarding
// @Description  Create the profile row for the authenticated identity
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile  body      createProfileRequest  true  "Profile JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /users/profile [post]
// @Security     BearerAuth
func (h *AuthHandler) CreateProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user := &domain.User{
		ID:               c.GetString(string(domain.KeyUserID)),
		Name:             req.Name,
		Email:            req.Email,
		AvatarSrc:        req.AvatarSrc,
		PhoneNumber:      &req.PhoneNumber,
		LinkedinURL:      &req.LinkedinURL,
		InterestedRoles:  &req.InterestedRoles,
		ExplorationPhase: &req.ExplorationPhase,
	}

	if err := h.authUC.CreateProfile(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile created", user)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched", user)
}
