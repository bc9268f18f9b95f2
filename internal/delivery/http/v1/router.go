package v1

import (
	"net/http"
	"time"

	"talenthub-backend/config"
	"talenthub-backend/internal/delivery/http/middleware"
	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/live"
	"talenthub-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	AdminUC       domain.AdminUsecase
	ImportUC      domain.ImportUsecase
	ExportUC      domain.ExportUsecase
	Hub           *live.Hub
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(
		middleware.DefaultRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))

	// Admin routes: authenticated + is_admin, with a tighter limit on the
	// write-heavy surface (imports, deletes, status flips).
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.Use(middleware.RateLimitMiddleware(
		middleware.WriteRateLimitConfig(deps.Config.RateLimitWriteThreshold, window)))

	NewAuthHandler(protected, deps.AuthUC)
	NewJobHandler(v1, protected, deps.JobUC, deps.ApplicationUC)
	NewAdminHandler(admin, deps.AdminUC)
	NewAdminJobHandler(admin, deps.JobUC, deps.ImportUC, deps.ExportUC)
	NewApplicationHandler(admin, deps.ApplicationUC, deps.ExportUC)
	NewStreamHandler(protected, admin, deps.Hub, deps.JobUC, deps.ApplicationUC, deps.AdminUC)

	return r
}
