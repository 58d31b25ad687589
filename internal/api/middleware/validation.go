package middleware

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"habla-jungla/internal/api/errors"
)

// Normalizer is implemented by requests that clean up their own fields
// after binding.
type Normalizer interface {
	Normalize()
}

// BindRequest binds a JSON or form body into req, turning binding failures
// into a validation APIError keyed by field.
func BindRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) {
			return errors.NewValidationError("Validation failed", map[string]string{
				"request": "invalid JSON format",
			})
		}

		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[strings.ToLower(fe.Field())] = describe(fe)
		}
		return errors.NewValidationError("Validation failed", details)
	}

	if n, ok := req.(Normalizer); ok {
		n.Normalize()
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
