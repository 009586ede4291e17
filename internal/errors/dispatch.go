// ABOUTME: Typed dispatch failures with the messages the original clients match on
// ABOUTME: Every category collapses to the single -32603 wire code

package errors

import "fmt"

// Kind classifies a dispatch failure. The wire protocol flattens every kind
// to jsonrpc.InternalError, but logs and tests want the distinction.
type Kind int

const (
	KindMissingParams Kind = iota
	KindUnknownMethod
	KindValidation
	KindHandlerFailure
)

func (k Kind) String() string {
	switch k {
	case KindMissingParams:
		return "missing_params"
	case KindUnknownMethod:
		return "unknown_method"
	case KindValidation:
		return "validation"
	case KindHandlerFailure:
		return "handler_failure"
	}
	return "unknown"
}

// DispatchError is the failure type raised anywhere between envelope decode
// and handler completion.
type DispatchError struct {
	Kind    Kind
	Message string
}

func (e *DispatchError) Error() string {
	return e.Message
}

// NewMissingParams reports a non-zero-argument method invoked with empty
// params.
func NewMissingParams(method string) *DispatchError {
	return &DispatchError{
		Kind:    KindMissingParams,
		Message: fmt.Sprintf("Parameters for %s are empty or null", method),
	}
}

// NewUnknownMethod reports a lookup miss in the method table.
func NewUnknownMethod(method string) *DispatchError {
	return &DispatchError{
		Kind:    KindUnknownMethod,
		Message: fmt.Sprintf("Unknown method: %s", method),
	}
}

// NewMissingField reports a required parameter that is absent or empty.
func NewMissingField(field, method string) *DispatchError {
	return &DispatchError{
		Kind:    KindValidation,
		Message: fmt.Sprintf("Missing or empty '%s' parameter for %s", field, method),
	}
}

// NewInvalidField reports a parameter that is present but unusable.
func NewInvalidField(field, method, reason string) *DispatchError {
	return &DispatchError{
		Kind:    KindValidation,
		Message: fmt.Sprintf("Invalid '%s' parameter for %s: %s", field, method, reason),
	}
}

// NewNotFound reports a handler-level miss against the scene registry.
func NewNotFound(what, name string) *DispatchError {
	return &DispatchError{
		Kind:    KindHandlerFailure,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// NewHandlerFailure wraps any other engine-side failure.
func NewHandlerFailure(message string) *DispatchError {
	return &DispatchError{
		Kind:    KindHandlerFailure,
		Message: message,
	}
}
