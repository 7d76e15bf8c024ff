package dto

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// ValidationError converts ozzo validation errors into a VALIDATION_FAILED domain error
// with one message per field.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return internal
		}
		return apperrors.NewValidationError(err.Error(), nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		details[field] = fieldErr.Error()
	}
	return apperrors.NewValidationError("validation failed", details)
}

func stringEquals(other string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" || s == other {
			return nil
		}
		return errors.New("passwords do not match")
	}
}

func dateRule(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(*s)); err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
}

func dateTimeRule(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	if _, err := ParseDateTime(*s); err != nil {
		return err
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD value as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ParseDateTime accepts RFC 3339 timestamps and plain dates.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must be an RFC 3339 timestamp or a YYYY-MM-DD date")
}

func optionalDate(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}

func optionalDateTime(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := ParseDateTime(*s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}
