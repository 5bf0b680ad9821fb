package middleware

import "github.com/gin-gonic/gin"

// Keys used to store the authenticated session in the Gin context.
const (
	userIDKey   = contextKey("userID")
	usernameKey = contextKey("username")
	roleKey     = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		reqVal := c.Request.Context().Value(userIDKey)
		if reqVal != nil {
			userID, ok := reqVal.(int64)
			return userID, ok
		}
		return 0, false
	}

	userID, ok := userIDVal.(int64)
	if !ok {
		// This should not happen if the auth middleware sets it correctly
		return 0, false
	}

	return userID, true
}

// GetUsernameFromContext retrieves the authenticated username from the Gin
// context.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	usernameVal, exists := c.Get(string(usernameKey))
	if !exists {
		return "", false
	}
	username, ok := usernameVal.(string)
	return username, ok
}

// GetRoleFromContext retrieves the authenticated session's role from the Gin
// context.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	roleVal, exists := c.Get(string(roleKey))
	if !exists {
		return "", false
	}
	role, ok := roleVal.(string)
	return role, ok
}
