package orders

import (
	"errors"
	"fmt"
)

// ErrInvalidDateRange is raised before any store access when
// dateFrom > dateTo.
var ErrInvalidDateRange = errors.New("dateFrom must not be after dateTo")

// ErrOrderNotFound is the explicit outcome for get/update/delete on a
// missing identifier.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError reports a malformed or out-of-range request field.
// Validation failures are terminal: no cache interaction, no store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StoreError wraps a failure from the persistence collaborator. It is
// logged where it occurs and never retried by this layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a caller error that should map to a
// bad-request outcome rather than a service failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidDateRange)
}
