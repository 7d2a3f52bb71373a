package presence

import (
	"context"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
)

type State string

const (
	StateNotCheckedIn     State = "NOT_CHECKED_IN"
	StateAwaitingLocation State = "AWAITING_LOCATION"
	StateLocationAcquired State = "LOCATION_ACQUIRED"
	StateLocationFailed   State = "LOCATION_FAILED"
	StateCheckedIn        State = "CHECKED_IN"
	StateCheckedOut       State = "CHECKED_OUT"
)

// CanSelectLocation reports whether the operator may still choose where they work.
func (s State) CanSelectLocation() bool {
	return s != StateCheckedIn
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Ticket identifies one location request. A resolution is only applied while
// its ticket is the latest one issued and the location type is unchanged.
type Ticket struct {
	Seq          uint64                  `json:"ticket"`
	LocationType attendance.LocationType `json:"location_type"`
}

// Clock reads the current wall-clock time in the operator's local timezone.
type Clock interface {
	Now() time.Time
}

// Locator is the one-shot geolocation capability.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// LocalClock returns a Clock reporting time.Now in loc.
func LocalClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time { return time.Now().In(loc) })
}
