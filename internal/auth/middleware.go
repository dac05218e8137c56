package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Authenticate validates the "Authorization: Bearer <token>" header and stores the
// token's user on the context. On failure it aborts with 401 and returns false.
func Authenticate(c *gin.Context, jwtManager *JWTManager) bool {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
		return false
	}

	scheme, tokenStr, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenStr) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header format"})
		return false
	}

	claims, err := jwtManager.ParseAndValidate(strings.TrimSpace(tokenStr))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return false
	}

	c.Set(userIDKey, claims.UserID)
	c.Set(userEmailKey, claims.Email)
	return true
}
