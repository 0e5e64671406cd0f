package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"finbot-be/internal/apperror"
)

var validate = validator.New()

// ValidateRequest checks a DTO against its validate tags and wraps failures
// as ErrInvalidInput so the error middleware reports a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			fields := make([]string, 0, len(errs))
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperror.Invalid("validation failed: %s", strings.Join(fields, ", "))
		}
		return apperror.Invalid("validation failed: %v", err)
	}
	return nil
}
