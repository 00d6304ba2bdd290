package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/bianoble/canvas-sync/internal/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their settings-file key instead of the Go name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks Settings for semantic correctness.
// Returns a list of validation error messages (empty if valid).
// Missing remote credentials are not an error here; see RequireRemote.
func Validate(s *Settings) []string {
	var errs []string

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []string{err.Error()}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, messageFor(fe))
		}
	}

	if _, err := s.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("'timezone': unknown time zone %q — use an IANA name such as America/New_York", s.Timezone))
	}

	return errs
}

// RequireRemote reports a configuration error when the settings cannot
// reach the remote API. Every remote operation calls it first.
func (s *Settings) RequireRemote() error {
	if s.RemoteBaseURL == "" || s.APIToken == "" {
		return apperrors.Configuration("Please configure Canvas URL and API token in settings")
	}
	if err := validate.Var(s.RemoteBaseURL, "url"); err != nil {
		return apperrors.Configuration(fmt.Sprintf("Canvas URL %q is not a valid URL", s.RemoteBaseURL))
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "url":
		return fmt.Sprintf("'%s' must be an absolute URL such as https://school.instructure.com", field)
	case "min":
		return fmt.Sprintf("'%s' must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("'%s' must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("'%s' failed the '%s' check", field, fe.Tag())
	}
}
