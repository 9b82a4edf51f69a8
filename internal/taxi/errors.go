package taxi

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected request.
type Kind string

const (
	KindUnknownCustomer   Kind = "unknown_customer"
	KindUnknownCity       Kind = "unknown_city"
	KindNoDriverAvailable Kind = "no_driver_available"
	KindUnknownRide       Kind = "unknown_ride"
	KindInvalidRoute      Kind = "invalid_route"
	KindInternal          Kind = "internal"
)

// Error is returned for every input validation failure. Two errors match
// under errors.Is when their kinds are equal.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnknownCustomer   = &Error{Kind: KindUnknownCustomer, Msg: "customer not registered"}
	ErrUnknownCity       = &Error{Kind: KindUnknownCity, Msg: "unknown city"}
	ErrNoDriverAvailable = &Error{Kind: KindNoDriverAvailable, Msg: "no drivers available right now"}
	ErrUnknownRide       = &Error{Kind: KindUnknownRide, Msg: "ride not found"}
	ErrInvalidRoute      = &Error{Kind: KindInvalidRoute, Msg: "start and end city must differ"}
)

func newError(base *Error, format string, args ...any) error {
	return &Error{Kind: base.Kind, Msg: base.Msg + ": " + fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or KindInternal for anything that is not a
// validation failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
