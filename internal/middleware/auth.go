package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/handlers"
	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/services"
)

type AuthMiddleware struct {
	authService services.AuthService
	log         *logger.Logger
}

func NewAuthMiddleware(authService services.AuthService, baseLog *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         baseLog.With("middleware", "AuthMiddleware"),
	}
}

// RequireAuth validates the bearer token and attaches the caller's
// identity to the request context. Requests without a valid token get 401.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			handlers.RespondError(c, http.StatusUnauthorized, "unauthorized", apierr.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			handlers.RespondServiceError(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
