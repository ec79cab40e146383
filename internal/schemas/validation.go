package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/omnia28/task-manager-api/internal/domain"
)

// FieldError is one entry of a 422 response detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	InvalidStatusMessage   = "must be one of " + joinValues(domain.AllTaskStatuses)
	InvalidPriorityMessage = "must be one of " + joinValues(domain.AllTaskPriorities)
)

func joinValues[T ~string](values []T) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = string(v)
	}
	return strings.Join(strs, ", ")
}

// RegisterValidators installs the custom binding validators on gin's
// validator engine and makes error messages report JSON field names.
// Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := tagName(fld.Tag.Get("json")); name != "" {
			return name
		}
		if name := tagName(fld.Tag.Get("form")); name != "" {
			return name
		}
		return fld.Name
	})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return err
	}
	return v.RegisterValidation("future", futureDate)
}

func tagName(tag string) string {
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// notBlank rejects strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// futureDate rejects timestamps that are not strictly in the future.
func futureDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(time.Now().UTC())
}

// BindingErrors converts a JSON binding error into 422 detail entries.
func BindingErrors(err error) []FieldError {
	return bindingErrors(err, "body")
}

// QueryErrors converts a query binding error into 422 detail entries.
func QueryErrors(err error) []FieldError {
	return bindingErrors(err, "query")
}

func bindingErrors(err error, fallback string) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []FieldError{{Field: typeErr.Field, Message: "invalid value type"}}
	}

	return []FieldError{{Field: fallback, Message: "invalid request"}}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be empty or only whitespace"
	case "future":
		return "must be in the future"
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
