package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGroup matches every input contract violation reported by the engine.
	ErrInvalidGroup = errors.New("invalid group snapshot")

	ErrNoMembers       = fmt.Errorf("%w: group has no members", ErrInvalidGroup)
	ErrDuplicateMember = fmt.Errorf("%w: duplicate member", ErrInvalidGroup)
	ErrUnknownMember   = fmt.Errorf("%w: unknown member", ErrInvalidGroup)
	ErrInvalidAmount   = fmt.Errorf("%w: amount must be positive", ErrInvalidGroup)
	ErrSelfPayment     = fmt.Errorf("%w: payer and target must differ", ErrInvalidGroup)

	// ErrAmountOverflow marks amounts or sums that do not fit in int64 cents.
	ErrAmountOverflow = fmt.Errorf("%w: out of range", ErrInvalidAmount)
)

// ValidationError describes which part of a group snapshot broke the input contract.
type ValidationError struct {
	// Field locates the offending value, e.g. "expenses[2].payer_id".
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, value string, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}
