package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeTracking represents action tracking errors
	ErrorTypeTracking ErrorType = "tracking"
	// ErrorTypeTool represents tool execution errors
	ErrorTypeTool ErrorType = "tool"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when the Neo4j endpoint is unreachable
// or rejects the credentials
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// ErrGraphSchemaFailed is returned when a schema statement cannot be applied
type ErrGraphSchemaFailed struct {
	*BaseError
	Statement string
}

func NewGraphSchemaFailed(statement string, err error) *ErrGraphSchemaFailed {
	return &ErrGraphSchemaFailed{
		BaseError: NewBaseError(ErrorTypeGraph, "schema initialization failed", err),
		Statement: statement,
	}
}

// Tracking Errors

// ErrTrackingDisabled is returned when Neo4j is not configured
var ErrTrackingDisabled = NewBaseError(ErrorTypeTracking, "action tracking is not configured", nil)

// ErrUserNotFound is returned when no user matches a lookup
type ErrUserNotFound struct {
	*BaseError
	Email string
}

func NewUserNotFound(email string) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeTracking, "User not found", nil),
		Email:     email,
	}
}

// ErrInvalidInput is returned when a request fails validation
type ErrInvalidInput struct {
	*BaseError
	Field  string
	Reason string
}

func NewInvalidInput(field, reason string) *ErrInvalidInput {
	return &ErrInvalidInput{
		BaseError: NewBaseError(ErrorTypeTracking, fmt.Sprintf("invalid %s: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrPayloadEncoding is returned when parameters or results cannot be
// serialized or deserialized
type ErrPayloadEncoding struct {
	*BaseError
	Field string
}

func NewPayloadEncoding(field string, err error) *ErrPayloadEncoding {
	return &ErrPayloadEncoding{
		BaseError: NewBaseError(ErrorTypeTracking, fmt.Sprintf("failed to encode %s", field), err),
		Field:     field,
	}
}

// Tool Errors

// ErrToolExecutionFailed is returned when tool execution fails
type ErrToolExecutionFailed struct {
	*BaseError
	ToolName string
	Reason   string
}

func NewToolExecutionFailed(toolName, reason string, err error) *ErrToolExecutionFailed {
	return &ErrToolExecutionFailed{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("tool execution failed: %s", toolName), err),
		ToolName:  toolName,
		Reason:    reason,
	}
}

// Context Errors

// ErrContextCancelled is returned when context is cancelled
type ErrContextCancelled struct {
	*BaseError
	Operation string
}

func NewContextCancelled(operation string, err error) *ErrContextCancelled {
	return &ErrContextCancelled{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context cancelled: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if t, ok := typeOf(err); ok && t == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsUserNotFound reports whether err is a not-found lookup outcome
func IsUserNotFound(err error) bool {
	var nf *ErrUserNotFound
	return errors.As(err, &nf)
}

// IsInvalidInput reports whether err is a validation failure
func IsInvalidInput(err error) bool {
	var inv *ErrInvalidInput
	return errors.As(err, &inv)
}

func typeOf(err error) (ErrorType, bool) {
	switch e := err.(type) {
	case *BaseError:
		return e.Type, true
	case *ErrGraphConnectionFailed:
		return e.Type, true
	case *ErrGraphQueryFailed:
		return e.Type, true
	case *ErrGraphSchemaFailed:
		return e.Type, true
	case *ErrUserNotFound:
		return e.Type, true
	case *ErrInvalidInput:
		return e.Type, true
	case *ErrPayloadEncoding:
		return e.Type, true
	case *ErrToolExecutionFailed:
		return e.Type, true
	case *ErrContextCancelled:
		return e.Type, true
	case *ErrConfigMissingRequired:
		return e.Type, true
	}
	return "", false
}
