package container

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies container failures.
type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeTypeNotFound
	ErrCodeNotConstructible
	ErrCodeDependencyCycle
	ErrCodeNotYetCreated
	ErrCodeConstructorFailed
	ErrCodeDuplicateType
	ErrCodeContainerSealed
	ErrCodeInvalidDefinition
	ErrCodeTypeMismatch
	ErrCodeInternal
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:           "UNKNOWN",
	ErrCodeTypeNotFound:      "TYPE_NOT_FOUND",
	ErrCodeNotConstructible:  "NOT_CONSTRUCTIBLE",
	ErrCodeDependencyCycle:   "DEPENDENCY_CYCLE",
	ErrCodeNotYetCreated:     "NOT_YET_CREATED",
	ErrCodeConstructorFailed: "CONSTRUCTOR_FAILED",
	ErrCodeDuplicateType:     "DUPLICATE_TYPE",
	ErrCodeContainerSealed:   "CONTAINER_SEALED",
	ErrCodeInvalidDefinition: "INVALID_DEFINITION",
	ErrCodeTypeMismatch:      "TYPE_MISMATCH",
	ErrCodeInternal:          "INTERNAL",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Sentinels for errors.Is. Matching compares codes only.
var (
	ErrTypeNotFound      = &Error{Code: ErrCodeTypeNotFound}
	ErrNotConstructible  = &Error{Code: ErrCodeNotConstructible}
	ErrDependencyCycle   = &Error{Code: ErrCodeDependencyCycle}
	ErrNotYetCreated     = &Error{Code: ErrCodeNotYetCreated}
	ErrConstructorFailed = &Error{Code: ErrCodeConstructorFailed}
	ErrDuplicateType     = &Error{Code: ErrCodeDuplicateType}
	ErrContainerSealed   = &Error{Code: ErrCodeContainerSealed}
	ErrInvalidDefinition = &Error{Code: ErrCodeInvalidDefinition}
	ErrTypeMismatch      = &Error{Code: ErrCodeTypeMismatch}
)

// Error is the single failure value returned by every container operation.
//
// Chain holds the resolution path that led to the failure, root first. For a
// dependency cycle it starts and ends with the same identifier.
type Error struct {
	Code    ErrorCode
	Message string
	Type    string
	Cause   error
	Chain   []string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.Code)

	if e.Type != "" {
		fmt.Fprintf(&b, " type=%q:", e.Type)
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if len(e.Chain) > 1 && e.Code != ErrCodeDependencyCycle {
		b.WriteString(" (via ")
		b.WriteString(strings.Join(e.Chain, " -> "))
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) withChain(chain []string) *Error {
	e.Chain = append([]string(nil), chain...)
	return e
}

func newError(code ErrorCode, typ, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Type:    typ,
		Cause:   cause,
	}
}

func errTypeNotFound(id string) *Error {
	if id == "" {
		return newError(ErrCodeTypeNotFound, id, "empty type identifier", nil)
	}
	return newError(ErrCodeTypeNotFound, id, "no type registered under "+id, nil)
}

func errNotConstructible(id string) *Error {
	return newError(ErrCodeNotConstructible, id, "type is abstract and has no alias to a concrete type", nil)
}

func errDependencyCycle(chain []string) *Error {
	var id string
	if len(chain) > 0 {
		id = chain[len(chain)-1]
	}
	return newError(
		ErrCodeDependencyCycle,
		id,
		"dependency cycle detected: "+strings.Join(chain, " -> "),
		nil,
	).withChain(chain)
}

func errNotYetCreated(id string) *Error {
	return newError(ErrCodeNotYetCreated, id, "no instance has been created yet", nil)
}

func errConstructorFailed(id string, cause error) *Error {
	return newError(ErrCodeConstructorFailed, id, "constructor failed", cause)
}

func errDuplicateType(id string) *Error {
	return newError(ErrCodeDuplicateType, id, "type already registered", nil)
}

func errContainerSealed(id string) *Error {
	return newError(ErrCodeContainerSealed, id, "cannot register types after resolution has started", nil)
}

func errInvalidDefinition(id, reason string) *Error {
	return newError(ErrCodeInvalidDefinition, id, reason, nil)
}

func errTypeMismatch(id, want string, got any) *Error {
	return newError(ErrCodeTypeMismatch, id, fmt.Sprintf("resolved to %T, want %s", got, want), nil)
}

func IsTypeNotFound(err error) bool {
	return errors.Is(err, ErrTypeNotFound)
}

func IsNotConstructible(err error) bool {
	return errors.Is(err, ErrNotConstructible)
}

func IsDependencyCycle(err error) bool {
	return errors.Is(err, ErrDependencyCycle)
}

func IsNotYetCreated(err error) bool {
	return errors.Is(err, ErrNotYetCreated)
}

func IsConstructorFailed(err error) bool {
	return errors.Is(err, ErrConstructorFailed)
}
