package game

import (
	"errors"
	"fmt"
)

// Sentinels for the validation taxonomy. Every rule violation wraps
// ErrInvalidAction, which in turn wraps ErrDomain, so callers can match at
// whatever granularity they need with errors.Is.
var (
	ErrDomain             = errors.New("domain error")
	ErrInvalidAction      = fmt.Errorf("invalid action: %w", ErrDomain)
	ErrOutOfBounds        = fmt.Errorf("out of bounds: %w", ErrInvalidAction)
	ErrInsufficientAP     = fmt.Errorf("insufficient AP: %w", ErrInvalidAction)
	ErrLineOfSightBlocked = fmt.Errorf("line of sight blocked: %w", ErrInvalidAction)
	ErrWrongTargetType    = fmt.Errorf("wrong target type: %w", ErrInvalidAction)
)

// ErrActionInProgress is returned when a caller tries to replace an action
// that is already casting. It is a caller bug, not a game rule violation, and
// deliberately does not wrap ErrDomain.
var ErrActionInProgress = errors.New("cannot override a casting action")

// DomainError carries a human-readable message alongside its sentinel kind.
type DomainError struct {
	Kind error
	Msg  string
}

func (e *DomainError) Error() string { return e.Msg }

func (e *DomainError) Unwrap() error { return e.Kind }

func domainErr(kind error, format string, args ...any) error {
	return &DomainError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func OutOfBounds(format string, args ...any) error {
	return domainErr(ErrOutOfBounds, format, args...)
}

func InsufficientAP(format string, args ...any) error {
	return domainErr(ErrInsufficientAP, format, args...)
}

func LineOfSightBlocked(format string, args ...any) error {
	return domainErr(ErrLineOfSightBlocked, format, args...)
}

func WrongTargetType(format string, args ...any) error {
	return domainErr(ErrWrongTargetType, format, args...)
}

func InvalidAction(format string, args ...any) error {
	return domainErr(ErrInvalidAction, format, args...)
}
