package service

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is not allowed from
	// the flow's current stage.
	ErrInvalidTransition = errors.New("invalid planning flow transition")

	// ErrStaleTransition is returned when the user navigated away while a
	// budget selection was in flight. The selection result was discarded.
	ErrStaleTransition = errors.New("planning flow changed during selection")

	// ErrStaleScope is returned when a newer Initialize or Close superseded a
	// progress load that was still fetching.
	ErrStaleScope = errors.New("progress scope changed during load")

	// ErrNoSession is returned by Toggle before Initialize has completed.
	ErrNoSession = errors.New("no active progress session")

	// errNoRegistration stands in when a registrar reports success without
	// a trip.
	errNoRegistration = errors.New("registrar returned no trip")
)
