package ledger

import (
	"errors"
	"fmt"
)

// Domain errors. HTTP handlers map these to status codes: ErrNotFound to
// 404, ErrInsufficientFunds / ErrAlreadySettled / ErrInflowReferenced to
// 409, ErrTxConflict to 503 (retryable by the caller, never by the engine).
var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientFunds = errors.New("selected inflow has no funds available")
	ErrInflowReferenced  = errors.New("inflow is still referenced by outflows")
	ErrAlreadySettled    = errors.New("overdraft is already settled")
	ErrTxConflict        = errors.New("transaction conflict, please retry")
)

// ValidationError reports malformed input rejected before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
