package presence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
	attendanceService "github.com/cmlabs-hris/presence-backend-go/internal/service/attendance"
)

// lateAfterHour is the last local hour that still counts as on time
const lateAfterHour = 9

// Listener receives a snapshot after every successful transition
type Listener func(presence.StatusResponse)

type ControllerImpl struct {
	mu        sync.Mutex
	repo      attendance.AttendanceRepository
	clock     presence.Clock
	listeners []Listener

	activeDate   string
	state        presence.State
	locationType attendance.LocationType
	branchName   string
	coords       *presence.Coordinates
	message      string
	today        *attendance.Record
	seq          uint64
	pendingSeq   uint64
}

func NewPresenceController(repo attendance.AttendanceRepository, clock presence.Clock, listeners ...Listener) presence.Controller {
	return &ControllerImpl{
		repo:         repo,
		clock:        clock,
		listeners:    listeners,
		state:        presence.StateNotCheckedIn,
		locationType: attendance.LocationHeadOffice,
	}
}

// Activate implements presence.Controller.
func (c *ControllerImpl) Activate(ctx context.Context) (presence.StatusResponse, error) {
	c.mu.Lock()
	err := c.activate(ctx, c.clock.Now().Format(attendance.DateLayout))
	status := c.snapshot()
	c.mu.Unlock()

	if err != nil {
		return presence.StatusResponse{}, err
	}
	c.notify(status)
	return status, nil
}

// SelectLocationType implements presence.Controller.
func (c *ControllerImpl) SelectLocationType(ctx context.Context, req presence.SelectLocationRequest) (presence.StatusResponse, error) {
	if err := req.Validate(); err != nil {
		return presence.StatusResponse{}, err
	}
	locationType := attendance.LocationType(req.LocationType)

	c.mu.Lock()
	if err := c.ensureToday(ctx); err != nil {
		c.mu.Unlock()
		return presence.StatusResponse{}, err
	}
	if !c.state.CanSelectLocation() {
		c.mu.Unlock()
		return presence.StatusResponse{}, presence.ErrAlreadyCheckedIn
	}

	if locationType != c.locationType {
		// A pending request issued under the old type can no longer apply
		c.locationType = locationType
		c.coords = nil
		c.pendingSeq = 0
		c.message = ""
		c.state = presence.StateNotCheckedIn
	} else if c.state == presence.StateCheckedOut {
		c.message = ""
		c.state = presence.StateNotCheckedIn
	}

	c.branchName = ""
	if locationType == attendance.LocationBranch {
		c.branchName = strings.TrimSpace(req.BranchName)
	}

	status := c.snapshot()
	c.mu.Unlock()

	c.notify(status)
	return status, nil
}

// RequestLocation implements presence.Controller.
func (c *ControllerImpl) RequestLocation(ctx context.Context) (presence.Ticket, error) {
	c.mu.Lock()
	if err := c.ensureToday(ctx); err != nil {
		c.mu.Unlock()
		return presence.Ticket{}, err
	}
	switch c.state {
	case presence.StateCheckedIn:
		c.mu.Unlock()
		return presence.Ticket{}, presence.ErrAlreadyCheckedIn
	case presence.StateCheckedOut:
		c.mu.Unlock()
		return presence.Ticket{}, presence.ErrSessionClosed
	}
	if !c.locationType.RequiresGeolocation() {
		c.mu.Unlock()
		return presence.Ticket{}, presence.ErrLocationNotRequired
	}

	c.seq++
	c.pendingSeq = c.seq
	c.coords = nil
	c.message = ""
	c.state = presence.StateAwaitingLocation
	ticket := presence.Ticket{Seq: c.seq, LocationType: c.locationType}
	status := c.snapshot()
	c.mu.Unlock()

	slog.Debug("Location requested", "ticket", ticket.Seq, "location_type", ticket.LocationType)
	c.notify(status)
	return ticket, nil
}

// ResolveLocation implements presence.Controller.
func (c *ControllerImpl) ResolveLocation(ctx context.Context, ticket presence.Ticket, coords presence.Coordinates, locateErr error) (presence.StatusResponse, error) {
	c.mu.Lock()
	if err := c.ensureToday(ctx); err != nil {
		c.mu.Unlock()
		return presence.StatusResponse{}, err
	}

	if c.state != presence.StateAwaitingLocation ||
		c.pendingSeq == 0 ||
		ticket.Seq != c.pendingSeq ||
		ticket.LocationType != c.locationType {
		current := c.locationType
		c.mu.Unlock()
		slog.Debug("Discarding stale location result",
			"ticket", ticket.Seq,
			"ticket_location_type", ticket.LocationType,
			"current_location_type", current)
		return presence.StatusResponse{}, presence.ErrStaleLocation
	}

	c.pendingSeq = 0
	if locateErr != nil {
		c.coords = nil
		c.state = presence.StateLocationFailed
		if errors.Is(locateErr, presence.ErrGeolocationUnsupported) {
			c.message = presence.ErrGeolocationUnsupported.Error()
		} else {
			c.message = presence.ErrLocationFailed.Error()
		}
		slog.Warn("Location acquisition failed", "ticket", ticket.Seq, "error", locateErr)
	} else {
		c.coords = &coords
		c.state = presence.StateLocationAcquired
		c.message = fmt.Sprintf("Location acquired: %.4f, %.4f", coords.Latitude, coords.Longitude)
	}

	status := c.snapshot()
	c.mu.Unlock()

	c.notify(status)
	return status, nil
}

// AcquireLocation implements presence.Controller.
//
// The locator runs without holding the controller lock, so other operations
// proceed while the request is in flight.
func (c *ControllerImpl) AcquireLocation(ctx context.Context, locator presence.Locator) (presence.StatusResponse, error) {
	ticket, err := c.RequestLocation(ctx)
	if err != nil {
		return presence.StatusResponse{}, err
	}

	if locator == nil {
		return c.ResolveLocation(ctx, ticket, presence.Coordinates{}, presence.ErrGeolocationUnsupported)
	}

	coords, locateErr := locator.Locate(ctx)
	return c.ResolveLocation(ctx, ticket, coords, locateErr)
}

// CheckIn implements presence.Controller.
func (c *ControllerImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	c.mu.Lock()
	if err := c.ensureToday(ctx); err != nil {
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, err
	}

	switch {
	case c.state == presence.StateCheckedIn:
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, presence.ErrAlreadyCheckedIn
	case c.state == presence.StateCheckedOut:
		// A new session starts with SelectLocationType
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, presence.ErrSessionClosed
	case c.state == presence.StateAwaitingLocation:
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, presence.ErrLocationPending
	case c.locationType.RequiresGeolocation() && (c.state != presence.StateLocationAcquired || c.coords == nil):
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, presence.ErrLocationRequired
	}

	if c.locationType == attendance.LocationBranch && validator.IsEmpty(c.branchName) {
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "branch_name",
			Message: "branch_name is required for Branch check-in",
		}}
	}

	now := c.clock.Now()
	status := attendance.StatusPresent
	if now.Hour() > lateAfterHour {
		status = attendance.StatusLate
	}
	checkIn := now.Format(attendance.TimeLayout)

	record := attendance.Record{
		Date:         now.Format(attendance.DateLayout),
		CheckIn:      &checkIn,
		LocationType: c.locationType,
		Status:       status,
	}
	if c.locationType == attendance.LocationBranch {
		name := c.branchName
		record.LocationName = &name
	}
	if c.coords != nil {
		lat, lng := c.coords.Latitude, c.coords.Longitude
		record.Latitude = &lat
		record.Longitude = &lng
	}

	created, err := c.repo.Append(ctx, record)
	if err != nil {
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to append attendance record: %w", err)
	}

	c.today = &created
	c.message = ""
	c.state = presence.StateCheckedIn
	snapshot := c.snapshot()
	c.mu.Unlock()

	slog.Info("Check-in recorded",
		"attendance_id", created.ID,
		"date", created.Date,
		"check_in", checkIn,
		"location_type", created.LocationType,
		"status", created.Status)
	c.notify(snapshot)
	return attendance.ToResponse(created), nil
}

// CheckOut implements presence.Controller.
func (c *ControllerImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	c.mu.Lock()
	if err := c.ensureToday(ctx); err != nil {
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, err
	}
	if c.state != presence.StateCheckedIn || c.today == nil {
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, presence.ErrNotCheckedIn
	}

	checkOut := c.clock.Now().Format(attendance.TimeLayout)
	closed, err := c.repo.CloseSession(ctx, c.today.ID, checkOut)
	if err != nil {
		c.mu.Unlock()
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance session: %w", err)
	}

	c.today = &closed
	c.coords = nil
	c.message = "Checked out successfully at " + checkOut
	c.state = presence.StateCheckedOut
	snapshot := c.snapshot()
	c.mu.Unlock()

	slog.Info("Check-out recorded", "attendance_id", closed.ID, "date", closed.Date, "check_out", checkOut)
	c.notify(snapshot)
	return attendance.ToResponse(closed), nil
}

// Status implements presence.Controller.
func (c *ControllerImpl) Status(ctx context.Context) (presence.StatusResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureToday(ctx); err != nil {
		return presence.StatusResponse{}, err
	}
	return c.snapshot(), nil
}

// ensureToday re-activates when the local date has moved on. Caller holds mu.
func (c *ControllerImpl) ensureToday(ctx context.Context) error {
	today := c.clock.Now().Format(attendance.DateLayout)
	if today == c.activeDate {
		return nil
	}
	return c.activate(ctx, today)
}

// activate derives the initial state from the store. Caller holds mu.
func (c *ControllerImpl) activate(ctx context.Context, today string) error {
	records, err := c.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read attendance records: %w", err)
	}

	c.activeDate = today
	c.coords = nil
	c.message = ""
	c.pendingSeq = 0
	c.branchName = ""

	if open := attendanceService.FindOpenByDate(records, today); open != nil {
		c.today = open
		c.locationType = open.LocationType
		if open.LocationName != nil {
			c.branchName = *open.LocationName
		}
		c.state = presence.StateCheckedIn
		return nil
	}

	c.today = attendanceService.FindByDate(records, today)
	c.locationType = attendance.LocationHeadOffice
	c.state = presence.StateNotCheckedIn
	return nil
}

// snapshot builds the status DTO. Caller holds mu.
func (c *ControllerImpl) snapshot() presence.StatusResponse {
	status := presence.StatusResponse{
		State:        c.state,
		LocationType: string(c.locationType),
		BranchName:   c.branchName,
		Message:      c.message,
	}
	if c.coords != nil {
		coords := *c.coords
		status.Location = &coords
	}
	if c.today != nil {
		resp := attendance.ToResponse(*c.today)
		status.TodayAttendance = &resp
	}

	selectable := c.state.CanSelectLocation() &&
		c.state != presence.StateAwaitingLocation &&
		c.state != presence.StateCheckedOut
	status.CanRequestLocation = selectable && c.locationType.RequiresGeolocation()
	status.CanCheckIn = selectable &&
		(!c.locationType.RequiresGeolocation() || (c.state == presence.StateLocationAcquired && c.coords != nil))
	status.CanCheckOut = c.state == presence.StateCheckedIn
	return status
}

func (c *ControllerImpl) notify(status presence.StatusResponse) {
	for _, l := range c.listeners {
		l(status)
	}
}
