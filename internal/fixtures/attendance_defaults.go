package fixtures

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// DEMO ATTENDANCE
// ==========================================

// DemoAttendance returns the sample history the portal starts with.
// A fresh slice is returned on every call.
func DemoAttendance() []attendance.Record {
	return []attendance.Record{
		{
			ID:           "a1",
			Date:         "2023-10-01",
			CheckIn:      strPtr("08:55 AM"),
			CheckOut:     strPtr("05:05 PM"),
			LocationType: attendance.LocationHeadOffice,
			Status:       attendance.StatusPresent,
		},
		{
			ID:           "a2",
			Date:         "2023-10-02",
			CheckIn:      strPtr("09:10 AM"),
			CheckOut:     strPtr("05:00 PM"),
			LocationType: attendance.LocationWFH,
			Status:       attendance.StatusLate,
		},
		{
			ID:           "a3",
			Date:         "2023-10-03",
			CheckIn:      strPtr("08:45 AM"),
			CheckOut:     strPtr("05:30 PM"),
			LocationType: attendance.LocationHeadOffice,
			Status:       attendance.StatusPresent,
		},
		{
			// Sick day, no clock-in
			ID:           "a4",
			Date:         "2023-10-04",
			LocationType: attendance.LocationWFH,
			Status:       attendance.StatusSick,
		},
		{
			ID:           "a5",
			Date:         "2023-10-05",
			CheckIn:      strPtr("09:00 AM"),
			CheckOut:     strPtr("06:00 PM"),
			LocationType: attendance.LocationBranch,
			LocationName: strPtr("West Side Hub"),
			Status:       attendance.StatusPresent,
		},
	}
}
