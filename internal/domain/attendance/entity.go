package attendance

type LocationType string

const (
	LocationHeadOffice LocationType = "Head Office"
	LocationBranch     LocationType = "Branch"
	LocationWFH        LocationType = "WFH"
)

// RequiresGeolocation reports whether a coordinate must be acquired before check-in.
func (l LocationType) RequiresGeolocation() bool {
	return l == LocationHeadOffice || l == LocationBranch
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
	StatusSick    Status = "Sick"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPresent, StatusLate, StatusAbsent, StatusLeave, StatusSick}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"
)

// Record is one attendance row. Date is the local calendar day (YYYY-MM-DD);
// CheckIn and CheckOut are local times of day formatted with TimeLayout.
type Record struct {
	ID           string
	Date         string
	CheckIn      *string
	CheckOut     *string
	LocationType LocationType
	LocationName *string
	Latitude     *float64
	Longitude    *float64
	Status       Status
}

// IsOpen reports whether the record is a clocked-in session without a check-out.
func (r Record) IsOpen() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// IsSynthetic reports whether the record was created without a clock-in
// (Sick, Leave and Absent entries).
func (r Record) IsSynthetic() bool {
	return r.CheckIn == nil
}
