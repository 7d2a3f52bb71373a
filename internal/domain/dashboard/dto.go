package dashboard

import "github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"

// RecentAttendanceLimit is the number of rows in the recent attendance table
const RecentAttendanceLimit = 5

// ========== ATTENDANCE STATS (pie chart) ==========

// AttendanceStatsResponse groups the store's records for the dashboard counters
type AttendanceStatsResponse struct {
	Present  int            `json:"present"` // Present + Late
	Sick     int            `json:"sick"`
	Leave    int            `json:"leave"`
	Absent   int            `json:"absent"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Date             string                          `json:"date"` // Format: "YYYY-MM-DD"
	CheckedInToday   bool                            `json:"checked_in_today"`
	TodayAttendance  *attendance.AttendanceResponse  `json:"today_attendance,omitempty"`
	AttendanceStats  AttendanceStatsResponse         `json:"attendance_stats"`
	RecentAttendance []attendance.AttendanceResponse `json:"recent_attendance"`
}
