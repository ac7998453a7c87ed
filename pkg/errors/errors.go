// Package errors provides structured error reporting for modalbox.
//
// The modal engine itself has no failure modes during normal operation;
// invalid requests are silent no-ops. Errors surface in two places: option
// validation when a modal is constructed, and malformed events arriving from
// platform collaborators, which are reported to the global ErrorHandler
// instead of being propagated into the event loop.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates invalid modal options.
	KindConfig
	// KindParsing indicates a platform event that could not be parsed.
	KindParsing
	// KindPlatform indicates a failure reported by a platform collaborator.
	KindPlatform
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindPlatform:
		return "platform"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ModalError represents a structured error in modalbox.
type ModalError struct {
	// Op is the operation that failed (e.g., "modal.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Channel is the platform event channel name, if applicable.
	Channel string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ModalError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("%s [%s] channel=%s: %v", e.Op, e.Kind, e.Channel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ModalError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.keyboard").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to parse event data.
type ParseError struct {
	// Channel is the platform channel that received the event.
	Channel string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from channel %s: got %T", e.DataType, e.Channel, e.Got)
}

// ErrorHandler receives errors reported by modalbox.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ModalError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
