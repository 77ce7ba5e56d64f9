package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedError "github.com/members-api/go-api-server/internal/shared/error"
	"github.com/members-api/go-api-server/internal/shared/handler"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token handles GET /auth. Credentials arrive as query parameters; missing
// parameters fall through the lookup as unknown credentials (404).
func (a *AuthHandler) Token(c *gin.Context) {
	username := c.Query("username")
	password := c.Query("password")

	response, err := a.authService.Token(c.Request.Context(), username, password)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}
