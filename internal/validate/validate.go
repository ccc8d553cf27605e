package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json name so messages match the request body
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// Error carries one message per failing field.
type Error struct {
	Details []string
}

func (e *Error) Error() string {
	return strings.Join(e.Details, "; ")
}

// Struct validates s against its `validate` tags. Field failures come back
// as *Error; anything else is returned unchanged.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	details := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", field))
		case "email":
			details = append(details, fmt.Sprintf("%s must be a valid email", field))
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fieldError.Param(), " ", ", ")))
		case "min", "gte", "gt":
			details = append(details, fmt.Sprintf("%s must be at least %s", field, fieldError.Param()))
		case "max", "lte", "lt":
			details = append(details, fmt.Sprintf("%s must be at most %s", field, fieldError.Param()))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", field))
		}
	}
	return &Error{Details: details}
}

// Email reports whether s is a syntactically valid address.
func Email(s string) bool {
	return v.Var(s, "required,email") == nil
}
