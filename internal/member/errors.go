package member

import (
	"net/http"

	sharedError "github.com/members-api/go-api-server/internal/shared/error"
)

const (
	memberNotFound = "MEMBER_NOT_FOUND" // errInfo
	duplicateEmail = "DUPLICATE_EMAIL"  // errInfo
)

var (
	ErrMemberNotFound = sharedError.NewDomainError(memberNotFound)
	ErrDuplicateEmail = sharedError.NewDomainError(duplicateEmail)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "Member not found.",
	})

	// Message is a placeholder: the handler rewrites it with the offending
	// email (see DuplicateEmailMessage).
	sharedError.RegisterDomainErrorResponse(duplicateEmail, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "Duplicate entry for key 'Email'",
	})
}

// DuplicateEmailMessage formats the conflict message exactly as clients
// expect it, naming the offending value and the constrained field.
func DuplicateEmailMessage(email string) string {
	return "Duplicate entry '" + email + "' for key 'Email'"
}
