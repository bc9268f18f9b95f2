package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"talenthub-backend/config"
	"talenthub-backend/internal/delivery/http/response"
	"talenthub-backend/internal/domain"
	"talenthub-backend/pkg/auth"
	"talenthub-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token against the identity provider's
// keys and loads the user's profile row. The admin flag always comes from
// the database, never from token claims, so a stale token cannot keep
// privileges that were revoked.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if cfg.AuthJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
				}
				return []byte(cfg.AuthJWTSecret), nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logger.Log.Debug("Token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token has no subject", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserName), name)

		// A valid token with no profile row is still allowed through: the
		// auth sync and profile creation endpoints need exactly that state.
		// IsAdmin stays false until a row says otherwise.
		user, err := authUC.GetCurrentUser(c.Request.Context(), sub)
		if err == nil {
			c.Set(string(domain.KeyIsAdmin), user.IsAdmin)
		} else {
			c.Set(string(domain.KeyIsAdmin), false)
		}

		c.Next()
	}
}

// RequireAdmin gates admin routes on the is_admin flag loaded by
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(string(domain.KeyIsAdmin)) {
			response.Error(c, http.StatusForbidden, "Administrator access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
