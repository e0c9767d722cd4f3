package gen

import (
	"errors"
	"fmt"
)

// GenerateError represents a fatal inconsistency detected during
// enumeration. Generation is a build-time step: every GenerateError aborts
// the entire run and no partial output is valid.
type GenerateError struct {
	// Code identifies the error category.
	Code GenerateErrorCode

	// Message is a human-readable description.
	Message string

	// Operator identifies the offending operator, if any.
	Operator string

	// LHS and RHS identify the offending type pair, if any.
	LHS string
	RHS string
}

// GenerateErrorCode categorizes generation errors.
type GenerateErrorCode string

const (
	// ErrCodeUnsupportedSignedPair indicates both operands of a binary
	// encrypted x encrypted overload are signed integer types. The feature
	// is intentionally unimplemented.
	ErrCodeUnsupportedSignedPair GenerateErrorCode = "UNSUPPORTED_SIGNED_PAIR"
)

// Error implements the error interface.
func (e *GenerateError) Error() string {
	if e.LHS != "" && e.RHS != "" {
		return fmt.Sprintf("%s: %s (operator=%s, lhs=%s, rhs=%s)", e.Code, e.Message, e.Operator, e.LHS, e.RHS)
	}
	if e.Operator != "" {
		return fmt.Sprintf("%s: %s (operator=%s)", e.Code, e.Message, e.Operator)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSignedPairError returns true if the error is an unsupported signed
// pair error. Uses errors.As to handle wrapped errors.
func IsSignedPairError(err error) bool {
	var ge *GenerateError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeUnsupportedSignedPair
	}
	return false
}

// NewSignedPairError creates a GenerateError for a signed x signed pair.
func NewSignedPairError(operator, lhs, rhs string) *GenerateError {
	return &GenerateError{
		Code:     ErrCodeUnsupportedSignedPair,
		Message:  "signed integer operand pairs are not supported yet",
		Operator: operator,
		LHS:      lhs,
		RHS:      rhs,
	}
}
