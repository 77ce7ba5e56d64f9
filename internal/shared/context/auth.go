package context

import (
	"net/http"
	"strconv"

	"github.com/members-api/go-api-server/internal/shared/logger"

	"github.com/gin-gonic/gin"
	sharedError "github.com/members-api/go-api-server/internal/shared/error"
)

// Context keys for storing user authentication information
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

func GetUserID(c *gin.Context) (uint32, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}

	idStr, ok := userID.(string)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint32(id), true
}

// RequireUserID retrieves the authenticated user's ID from the Gin context.
// If the user ID is not found, automatically sends an authentication error response.
// Returns the user ID and true if found, zero and false if not found (error already sent).
func RequireUserID(c *gin.Context) (uint32, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "Authentication required.",
		})
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] no user ID in request context")
		return 0, false
	}
	return userID, true
}
