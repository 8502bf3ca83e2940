package types

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes resolution errors
type ErrorCode string

const (
	// ErrCodeNotFound means no strategy produced a candidate and no fallback
	// was given, or a configuration-named candidate could not be located.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInstantiationFailed means a candidate type was located but its
	// construction failed.
	ErrCodeInstantiationFailed ErrorCode = "instantiation_failed"
)

// ResolutionError represents a standardized error from provider resolution
type ResolutionError struct {
	Code        ErrorCode // Categorized error code
	FactoryID   string    // Which factory identifier was being resolved
	TypeName    string    // Implementation type name, when one was named
	Message     string    // Human-readable message
	OriginalErr error     // Wrapped original error
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("[%s] %s (type=%s, code=%s)", e.FactoryID, e.Message, e.TypeName, e.Code)
	}
	return fmt.Sprintf("[%s] %s (code=%s)", e.FactoryID, e.Message, e.Code)
}

// Unwrap returns the original error for errors.Is/As
func (e *ResolutionError) Unwrap() error {
	return e.OriginalErr
}

// WithTypeName sets the type name field and returns the error for chaining
func (e *ResolutionError) WithTypeName(name string) *ResolutionError {
	e.TypeName = name
	return e
}

// WithOriginalErr sets the original error field and returns the error for chaining
func (e *ResolutionError) WithOriginalErr(err error) *ResolutionError {
	e.OriginalErr = err
	return e
}

// NewNotFoundError creates a ResolutionError reporting that no provider
// could be located for the factory identifier.
func NewNotFoundError(factoryID string, message string) *ResolutionError {
	return &ResolutionError{
		Code:      ErrCodeNotFound,
		FactoryID: factoryID,
		Message:   message,
	}
}

// NewInstantiationError creates a ResolutionError reporting that a located
// candidate type could not be constructed.
func NewInstantiationError(factoryID, typeName string, cause error) *ResolutionError {
	return &ResolutionError{
		Code:        ErrCodeInstantiationFailed,
		FactoryID:   factoryID,
		TypeName:    typeName,
		Message:     fmt.Sprintf("provider %s could not be instantiated", typeName),
		OriginalErr: cause,
	}
}

// IsNotFound reports whether err is a ResolutionError with ErrCodeNotFound.
func IsNotFound(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Code == ErrCodeNotFound
}

// IsInstantiationFailed reports whether err is a ResolutionError with
// ErrCodeInstantiationFailed.
func IsInstantiationFailed(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.Code == ErrCodeInstantiationFailed
}
