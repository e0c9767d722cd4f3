package testgen

import (
	"errors"
	"fmt"
	"math/big"
)

// EmitError represents a fatal inconsistency detected while rendering test
// cases. Emission is a build-time step: every EmitError aborts the run and
// callers must not persist partially generated artifacts.
type EmitError struct {
	// Code identifies the error category.
	Code EmitErrorCode

	// Message is a human-readable description.
	Message string

	// Method is the canonical method name of the offending overload.
	Method string

	// TestIndex is the 1-based fixture index, for range errors.
	TestIndex int

	// Value is the offending value, for range errors.
	Value *big.Int
}

// EmitErrorCode categorizes emission errors.
type EmitErrorCode string

const (
	// ErrCodeMissingTestFixtures indicates a generated overload has zero
	// registered test vectors.
	ErrCodeMissingTestFixtures EmitErrorCode = "MISSING_TEST_FIXTURES"

	// ErrCodeValueOutOfRange indicates a fixture input or expected output
	// falls outside [0, 2^bits] for its declared operand width.
	ErrCodeValueOutOfRange EmitErrorCode = "VALUE_OUT_OF_RANGE"
)

// Error implements the error interface.
func (e *EmitError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (method=%s, test=%d, value=%s)", e.Code, e.Message, e.Method, e.TestIndex, e.Value)
	}
	if e.Method != "" {
		return fmt.Sprintf("%s: %s (method=%s)", e.Code, e.Message, e.Method)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMissingFixturesError returns true if the error is a missing fixtures
// error. Uses errors.As to handle wrapped errors.
func IsMissingFixturesError(err error) bool {
	var ee *EmitError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeMissingTestFixtures
	}
	return false
}

// IsRangeError returns true if the error is a value range error.
func IsRangeError(err error) bool {
	var ee *EmitError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeValueOutOfRange
	}
	return false
}

// NewMissingFixturesError creates an EmitError for an overload with no
// registered test vectors.
func NewMissingFixturesError(method string) *EmitError {
	return &EmitError{
		Code:    ErrCodeMissingTestFixtures,
		Message: "no test fixtures registered for generated overload",
		Method:  method,
	}
}

// NewRangeError creates an EmitError for a fixture value outside the
// declared operand width.
func NewRangeError(method string, testIndex, bits int, value *big.Int) *EmitError {
	return &EmitError{
		Code:      ErrCodeValueOutOfRange,
		Message:   fmt.Sprintf("fixture value exceeds %d-bit operand range", bits),
		Method:    method,
		TestIndex: testIndex,
		Value:     new(big.Int).Set(value),
	}
}
