package presence

import "errors"

// Presence domain errors
var (
	ErrGeolocationUnsupported = errors.New("geolocation is not supported by your browser")
	ErrLocationFailed         = errors.New("unable to retrieve location, please allow permission")
	ErrLocationRequired       = errors.New("location must be acquired before checking in")
	ErrLocationNotRequired    = errors.New("work from home does not require a location")
	ErrStaleLocation          = errors.New("location result no longer matches the current request")
	ErrLocationPending        = errors.New("location request is still in progress")
	ErrNotCheckedIn           = errors.New("you have not checked in yet")
	ErrAlreadyCheckedIn       = errors.New("you are already checked in")
	ErrSessionClosed          = errors.New("you have checked out, select a location type to start a new session")
)
