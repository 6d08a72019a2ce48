package internaltypes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidDateFormat  = fmt.Errorf("%w: invalid date format", ErrValidation)
	ErrMissingParameter   = fmt.Errorf("%w: missing parameter", ErrValidation)
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FieldError reports why a single input field was rejected.
// Err is one of the validation sentinels above.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e FieldError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// FieldErrors collects every rejected field of one request.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() []error {
	out := make([]error, 0, len(fe))
	for _, e := range fe {
		out = append(out, e)
	}
	return out
}

// Fields returns field -> reason, joining reasons when a field failed twice.
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string, len(fe))
	for _, e := range fe {
		if prev, ok := m[e.Field]; ok {
			m[e.Field] = prev + "; " + e.Reason
			continue
		}
		m[e.Field] = e.Reason
	}
	return m
}

// Names returns the sorted list of rejected fields.
func (fe FieldErrors) Names() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range fe {
		if !seen[e.Field] {
			seen[e.Field] = true
			out = append(out, e.Field)
		}
	}
	sort.Strings(out)
	return out
}

// OrNil returns nil for an empty collection so callers can `return errs.OrNil()`.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict)
}
