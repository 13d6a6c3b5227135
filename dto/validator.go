package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var deviceIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("device_id", validateDeviceID)
}

func GetValidator() *validator.Validate {
	return validate
}

// Device ids come straight off kiosk firmware; anything outside this set is
// a misconfigured device, not a storage key.
func validateDeviceID(fl validator.FieldLevel) bool {
	return deviceIDRegex.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			case "device_id":
				message = fieldError.Field() + " must contain only letters, numbers, hyphens and underscores"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "datetime":
				message = fieldError.Field() + " must be a valid timestamp"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
