package presence

import (
	"context"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
)

// Controller drives the check-in workflow for today
type Controller interface {
	// Activate reads today's record and picks the initial state
	Activate(ctx context.Context) (StatusResponse, error)

	// SelectLocationType changes where the operator works today
	SelectLocationType(ctx context.Context, req SelectLocationRequest) (StatusResponse, error)

	// RequestLocation issues a ticket for one geolocation attempt
	RequestLocation(ctx context.Context) (Ticket, error)

	// ResolveLocation applies a geolocation result for a ticket
	ResolveLocation(ctx context.Context, ticket Ticket, coords Coordinates, locateErr error) (StatusResponse, error)

	// AcquireLocation requests and resolves a location with locator
	AcquireLocation(ctx context.Context, locator Locator) (StatusResponse, error)

	// CheckIn appends today's record
	CheckIn(ctx context.Context) (attendance.AttendanceResponse, error)

	// CheckOut closes today's open record
	CheckOut(ctx context.Context) (attendance.AttendanceResponse, error)

	// Status returns the current snapshot
	Status(ctx context.Context) (StatusResponse, error)
}
