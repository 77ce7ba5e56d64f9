package validator

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ValidateActiveFlag validates a boolean-as-string field ("true"/"false",
// also accepting the 1/0 forms strconv recognizes). The member API takes its
// active flag as a string so that form-style clients can submit it.
func ValidateActiveFlag(fl validator.FieldLevel) bool {
	_, err := strconv.ParseBool(fl.Field().String())
	return err == nil
}
