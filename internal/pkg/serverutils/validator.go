package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and reports the first failing
// field as a 400 AppError.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			first := errs[0]
			return NewAppError(
				fiber.StatusBadRequest,
				fmt.Sprintf("Field '%s' failed on '%s' validation", first.Field(), first.Tag()),
			)
		}
		return NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
