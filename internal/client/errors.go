package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by lookups that matched nothing.
var ErrNotFound = errors.New("not found")

// duplicateCode is the error code the remote store reports for unique-constraint violations.
const duplicateCode = "UNIQUE"

// FieldError is one entry of a mutation's productErrors list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// ValidationError means the remote store rejected a request's content.
// It concerns a single row and never aborts a run.
type ValidationError struct {
	Op     string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.String())
	}
	return fmt.Sprintf("%s rejected: %s", e.Op, strings.Join(parts, "; "))
}

// TransportError means the remote store could not be reached, refused our
// credentials, or answered with something other than a GraphQL payload.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsDuplicateSKU reports whether err is a product creation rejected because
// a product with the same SKU already exists.
func IsDuplicateSKU(err error) bool {
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		return false
	}
	for _, fe := range validationErr.Errors {
		if fe.Field == "sku" && fe.Code == duplicateCode {
			return true
		}
	}
	return false
}

// IsTransport reports whether err must abort the whole run.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

func checkFieldErrors(op string, errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Op: op, Errors: errs}
}
