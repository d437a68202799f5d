// Package rpgerr provides the error taxonomy used across the engine.
//
// Every pipeline operation that can fail for a game-rule reason returns
// *Error carrying one of the five classes the core distinguishes:
//
//   - ContractViolation: a required component is missing. Raised at the
//     boundary, never silently swallowed, because it indicates a caller bug.
//   - InvalidInput: malformed request (out-of-bounds click, bad inventory
//     index). Handled locally with a user-visible message; turn not consumed.
//   - DeniedAction: legal request blocked by game rules (locked door, out of
//     range, paralysis). Emits a warning; turn consumption depends on the rule.
//   - ExternalUnavailable: an optional collaborator (metrics, knowledge) is
//     absent. Always fails closed; never propagates past its call site.
//   - Fatal: data-model corruption. Logged, a safe default is substituted,
//     and the core continues; never raised past the action boundary.
package rpgerr

import (
	"errors"
	"fmt"
)

// Code categorizes why an operation could not proceed.
type Code string

// Error code constants, one per §7 error class plus finer-grained reasons
// used within DeniedAction.
const (
	// CodeContractViolation marks a caller bug: a required component or
	// invariant was missing where the contract guarantees its presence.
	CodeContractViolation Code = "contract_violation"
	// CodeInvalidArgument marks malformed input (InvalidInput).
	CodeInvalidArgument Code = "invalid_argument"
	// CodeNotAllowed marks a generic rule denial (DeniedAction).
	CodeNotAllowed Code = "not_allowed"
	// CodeOutOfRange marks a ranged-attack or movement range denial.
	CodeOutOfRange Code = "out_of_range"
	// CodeBlocked marks denial by a status effect or physical obstruction.
	CodeBlocked Code = "blocked"
	// CodeUnavailable marks an optional collaborator's absence
	// (ExternalUnavailable) — callers must treat this as fail-closed, not
	// propagate it.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks data-model corruption (Fatal).
	CodeInternal Code = "internal"
)

// Error is a structured game-rule error carrying a Code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "rpgerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// WithMeta returns a copy of e with a metadata key set.
func (e *Error) WithMeta(key string, value any) *Error {
	clone := *e
	clone.Meta = make(map[string]any, len(e.Meta)+1)
	for k, v := range e.Meta {
		clone.Meta[k] = v
	}
	clone.Meta[key] = value
	return &clone
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with additional context, preserving its Code if it is
// already an *Error.
func Wrap(err error, message string) *Error {
	if err == nil {
		return New(CodeInternal, fmt.Sprintf("rpgerr.Wrap called with nil: %s", message))
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: message, Cause: err, Meta: existing.Meta}
	}
	return &Error{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf wraps err with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode extracts the Code from any error, defaulting to CodeInternal.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Code
	}
	return CodeInternal
}

// IsContractViolation reports whether err represents a caller-contract bug.
func IsContractViolation(err error) bool { return GetCode(err) == CodeContractViolation }

// IsInvalidInput reports whether err represents malformed input.
func IsInvalidInput(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsDeniedAction reports whether err represents a rule-based denial.
func IsDeniedAction(err error) bool {
	switch GetCode(err) {
	case CodeNotAllowed, CodeOutOfRange, CodeBlocked:
		return true
	default:
		return false
	}
}

// IsUnavailable reports whether err represents an absent optional collaborator.
func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

// ContractViolation creates a CodeContractViolation error.
func ContractViolation(op, missing string) *Error {
	return Newf(CodeContractViolation, "%s: required component missing: %s", op, missing)
}

// InvalidInput creates a CodeInvalidArgument error.
func InvalidInput(reason string) *Error {
	return New(CodeInvalidArgument, "invalid input: "+reason)
}

// Denied creates a CodeNotAllowed error for a named game rule.
func Denied(reason string) *Error {
	return New(CodeNotAllowed, reason)
}

// OutOfRange creates a CodeOutOfRange error.
func OutOfRange(reason string) *Error {
	return New(CodeOutOfRange, reason)
}

// Blocked creates a CodeBlocked error naming the blocker.
func Blocked(blocker string) *Error {
	return Newf(CodeBlocked, "blocked by %s", blocker)
}
