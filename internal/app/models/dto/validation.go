package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

// NonFieldErrors is the field name used for problems not tied to one field
const NonFieldErrors = "non_field_errors"

// HandleValidationError converts a request binding error into a
// ValidationError naming each offending field.
func HandleValidationError(err error) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var existing *apperrors.ValidationError

	switch {
	case errors.As(err, &existing):
		return existing
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), formatFieldError(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = NonFieldErrors
		}
		verr.Add(field, typeMessage(typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		verr.Add(NonFieldErrors, "Malformed JSON request body.")
	case errors.Is(err, io.EOF):
		verr.Add(NonFieldErrors, "Request body is required.")
	default:
		verr.Add(NonFieldErrors, "Invalid request data.")
	}

	return verr
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice. Use one of: %s.", fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "clocktime":
		return "Time has wrong format. Use hh:mm or hh:mm:ss."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

var dateType = reflect.TypeOf(Date{})

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Invalid value."
	}
	if t == dateType {
		return "Date has wrong format. Use YYYY-MM-DD."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.Slice, reflect.Array:
		return "Expected a list of items."
	default:
		return "Invalid value."
	}
}
