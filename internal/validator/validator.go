package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
)

const (
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat", validateSeatID)

	return validator
}

// validateSeatID checks the "<row>-<col>" shape only; hall bounds are
// enforced by the booking coordinator, which knows the hall.
func validateSeatID(fl validator.FieldLevel) bool {
	_, _, ok := domain.ParseSeat(fl.Field().String())
	return ok
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "unique":
		return "must not contain duplicates"
	case "seat":
		return "must be a seat identifier like \"3-7\""
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	default:
		return "is invalid"
	}
}
