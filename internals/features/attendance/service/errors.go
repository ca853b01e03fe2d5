package service

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindOutOfRange          Kind = "OUT_OF_RANGE"
	KindAlreadyClockedIn    Kind = "ALREADY_CLOCKED_IN"
	KindNoOpenSession       Kind = "NO_OPEN_SESSION"
	KindLocationUnavailable Kind = "LOCATION_UNAVAILABLE"
	KindNoActiveLocation    Kind = "NO_ACTIVE_LOCATION"
	KindStoreUnavailable    Kind = "STORE_UNAVAILABLE"
)

// GateError is a per-request rejection of a clock-in/out. Every kind is
// retry-safe: no record has been written when one is returned.
type GateError struct {
	Kind        Kind
	Message     string
	Distance    *float64
	MaxDistance *float64
	Err         error
}

func (e *GateError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GateError) Unwrap() error { return e.Err }

// Is matches on Kind so errors.Is(err, ErrOutOfRange) works for any instance.
func (e *GateError) Is(target error) bool {
	t, ok := target.(*GateError)
	return ok && t.Kind == e.Kind
}

var (
	ErrOutOfRange          = &GateError{Kind: KindOutOfRange, Message: "you must be at the salon to clock in or out"}
	ErrAlreadyClockedIn    = &GateError{Kind: KindAlreadyClockedIn, Message: "already clocked in today"}
	ErrNoOpenSession       = &GateError{Kind: KindNoOpenSession, Message: "no open clock-in to close"}
	ErrLocationUnavailable = &GateError{Kind: KindLocationUnavailable, Message: "could not get your current location"}
	ErrNoActiveLocation    = &GateError{Kind: KindNoActiveLocation, Message: "no active clock-in location is configured"}
	ErrStoreUnavailable    = &GateError{Kind: KindStoreUnavailable, Message: "attendance store unavailable, try again"}
)

// Store-level sentinels returned by Store implementations.
var (
	ErrDayTaken      = errors.New("attendance record already exists for this day")
	ErrSessionClosed = errors.New("attendance session already closed")
	ErrNotFound      = errors.New("not found")
	ErrWorkerUnknown = errors.New("staff member not found")
)

func gateErr(base *GateError, err error) *GateError {
	return &GateError{Kind: base.Kind, Message: base.Message, Err: err}
}

func outOfRange(distance, max float64) *GateError {
	return &GateError{
		Kind:        KindOutOfRange,
		Message:     fmt.Sprintf("you are %.0fm away, you must be within %.0fm of the salon", distance, max),
		Distance:    &distance,
		MaxDistance: &max,
	}
}

// KindOf returns the gate error kind of err, or "" when err is not a GateError.
func KindOf(err error) Kind {
	var ge *GateError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}
