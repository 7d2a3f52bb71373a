package dashboard

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	attendanceService "github.com/cmlabs-hris/presence-backend-go/internal/service/attendance"
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	clock presence.Clock
}

func NewDashboardService(repo attendance.AttendanceRepository, clock presence.Clock) dashboard.DashboardService {
	return &DashboardServiceImpl{
		AttendanceRepository: repo,
		clock:                clock,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	records, err := s.AttendanceRepository.List(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	today := s.clock.Now().Format(attendance.DateLayout)
	resp := dashboard.DashboardResponse{
		Date:            today,
		AttendanceStats: buildStats(attendanceService.Aggregate(records)),
	}

	// Banner: any record for today that carries a clock-in
	for _, r := range records {
		if r.Date == today && r.CheckIn != nil {
			todayResp := attendance.ToResponse(r)
			resp.CheckedInToday = true
			resp.TodayAttendance = &todayResp
			break
		}
	}

	sorted := attendanceService.SortByDateDescending(records)
	if len(sorted) > dashboard.RecentAttendanceLimit {
		sorted = sorted[:dashboard.RecentAttendanceLimit]
	}
	resp.RecentAttendance = make([]attendance.AttendanceResponse, 0, len(sorted))
	for _, r := range sorted {
		resp.RecentAttendance = append(resp.RecentAttendance, attendance.ToResponse(r))
	}

	return resp, nil
}

func buildStats(summary attendance.Summary) dashboard.AttendanceStatsResponse {
	byStatus := make(map[string]int, len(summary.ByStatus))
	for status, count := range summary.ByStatus {
		byStatus[string(status)] = count
	}

	return dashboard.AttendanceStatsResponse{
		Present:  summary.Count(attendance.StatusPresent) + summary.Count(attendance.StatusLate),
		Sick:     summary.Count(attendance.StatusSick),
		Leave:    summary.Count(attendance.StatusLeave),
		Absent:   summary.Count(attendance.StatusAbsent),
		Total:    summary.Total,
		ByStatus: byStatus,
	}
}
