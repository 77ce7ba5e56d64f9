package auth

import (
	"net/http"

	sharedError "github.com/members-api/go-api-server/internal/shared/error"
)

const (
	invalidCredentials = "INVALID_CREDENTIALS" // errInfo
)

var (
	ErrInvalidCredentials = sharedError.NewDomainError(invalidCredentials)
)

func init() {
	// 404 for both unknown username and wrong password, so the status code
	// never reveals whether an account exists.
	sharedError.RegisterDomainErrorResponse(invalidCredentials, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "AUTH-001",
		Message: "Invalid username or password.",
	})
}
