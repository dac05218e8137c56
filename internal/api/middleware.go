package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/response"
	"github.com/nekogravitycat/gym-trial-backend/internal/user"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request scoped logger and logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		logger := logging.FromContext(c.Request.Context()).With("request_id", requestID)
		logging.SetGin(c, logger)

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// RequireIdentity validates the bearer token and resolves the caller's account.
// Unknown or deactivated accounts are rejected even with a valid token.
func RequireIdentity(jwtManager *auth.JWTManager, userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Authenticate(c, jwtManager) {
			return
		}

		u, err := userService.GetByID(c.Request.Context(), auth.GetUserID(c))
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "user not found"})
				return
			}
			response.Error(c, err)
			c.Abort()
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "account is deactivated"})
			return
		}

		auth.SetIdentity(c, u.Identity())
		c.Next()
	}
}

// AdminOnly must run after RequireIdentity.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "unauthorized"})
			return
		}
		if !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "admin access required"})
			return
		}
		c.Next()
	}
}
