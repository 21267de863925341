package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"tuff-gaming/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report JSON field names so messages match the request payload.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateRequest validates a struct against its validation tags
func ValidateRequest(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return validationFailure(err)
	}
	return nil
}

// DecodeAndValidate decodes a JSON request body and validates it.
// Failures are returned as validation errors carrying the first field message.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "Invalid request body")
	}
	return ValidateRequest(v)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors converts validator errors to a readable format
func FormatValidationErrors(err error) []ValidationError {
	var errs []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return errs
}

func validationFailure(err error) error {
	fields := FormatValidationErrors(err)
	if len(fields) == 0 {
		return apperror.Wrap(apperror.KindValidation, err, "Invalid request")
	}
	appErr := apperror.Wrap(apperror.KindValidation, err, fields[0].Message)
	return appErr.WithDetails(fields)
}

func getErrorMessage(e validator.FieldError) string {
	label := fieldLabel(e.Field())
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return label + " must be at least " + e.Param() + " characters long"
	case "max":
		return label + " must be at most " + e.Param() + " characters long"
	case "uuid", "uuid4", "uuid7":
		return "Invalid " + e.Field()
	default:
		return "Invalid " + e.Field()
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
