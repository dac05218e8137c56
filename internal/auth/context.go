package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/authz"
)

const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
	identityKey  = "identity"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}

// SetIdentity stores the resolved caller for later handlers.
func SetIdentity(c *gin.Context, id authz.Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the caller resolved by the identity middleware.
// ok is false on routes that do not resolve one.
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return authz.Identity{}, false
	}
	id, ok := v.(authz.Identity)
	return id, ok
}
