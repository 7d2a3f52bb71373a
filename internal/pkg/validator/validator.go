package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var (
	structValidator *playground.Validate
	once            sync.Once
)

func instance() *playground.Validate {
	once.Do(func() {
		structValidator = playground.New(playground.WithRequiredStructEnabled())
		// Report json names so messages match the request body
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = structValidator.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
			return !IsEmpty(fl.Field().String())
		})
	})
	return structValidator
}

// Struct validates s against its `validate` tags and returns ValidationErrors
// on failure, so callers can append their own rules to the same list.
func Struct(s interface{}) ValidationErrors {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return errs
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "notblank":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.Join(oneOfParams(fe.Param()), ", ")
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must not exceed " + fe.Param()
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "lte":
		return fe.Field() + " must be less than or equal to " + fe.Param()
	case "datetime":
		return fe.Field() + " must be in YYYY-MM-DD format"
	default:
		return fe.Field() + " is invalid"
	}
}

var oneOfParamRegex = regexp.MustCompile(`'[^']*'|\S+`)

// oneOfParams splits a oneof parameter the way the validator does, keeping
// quoted values with spaces together.
func oneOfParams(param string) []string {
	values := oneOfParamRegex.FindAllString(param, -1)
	for i, v := range values {
		values[i] = strings.Trim(v, "'")
	}
	return values
}
