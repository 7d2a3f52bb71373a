package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/presence-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(date string) presence.Clock {
	t, _ := time.ParseInLocation(attendance.DateLayout, date, time.Local)
	return presence.ClockFunc(func() time.Time { return t.Add(10 * time.Hour) })
}

func TestDashboardService_GetDashboard_DemoData(t *testing.T) {
	repo := memory.NewAttendanceRepository(fixtures.DemoAttendance())
	svc := NewDashboardService(repo, fixedClock("2023-10-06"))

	resp, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2023-10-06", resp.Date)
	assert.False(t, resp.CheckedInToday)
	assert.Nil(t, resp.TodayAttendance)

	stats := resp.AttendanceStats
	assert.Equal(t, 4, stats.Present, "present counts Late too")
	assert.Equal(t, 1, stats.Sick)
	assert.Equal(t, 0, stats.Leave)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.ByStatus["Late"])

	require.Len(t, resp.RecentAttendance, 5)
	assert.Equal(t, "2023-10-05", resp.RecentAttendance[0].Date)
	assert.Equal(t, "2023-10-01", resp.RecentAttendance[4].Date)
}

func TestDashboardService_GetDashboard_CheckedInToday(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAttendanceRepository(fixtures.DemoAttendance())
	checkIn := "08:40 AM"
	_, err := repo.Append(ctx, attendance.Record{
		Date:         "2023-10-06",
		CheckIn:      &checkIn,
		LocationType: attendance.LocationWFH,
		Status:       attendance.StatusPresent,
	})
	require.NoError(t, err)

	resp, err := NewDashboardService(repo, fixedClock("2023-10-06")).GetDashboard(ctx)
	require.NoError(t, err)

	assert.True(t, resp.CheckedInToday)
	require.NotNil(t, resp.TodayAttendance)
	assert.Equal(t, "08:40 AM", *resp.TodayAttendance.CheckIn)
	assert.Len(t, resp.RecentAttendance, 5, "recent table is capped")
	assert.Equal(t, "2023-10-06", resp.RecentAttendance[0].Date)
}

func TestDashboardService_GetDashboard_SyntheticEntryIsNotACheckIn(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAttendanceRepository([]attendance.Record{
		{ID: "s1", Date: "2023-10-06", LocationType: attendance.LocationWFH, Status: attendance.StatusSick},
	})

	resp, err := NewDashboardService(repo, fixedClock("2023-10-06")).GetDashboard(ctx)
	require.NoError(t, err)
	assert.False(t, resp.CheckedInToday)
	assert.Equal(t, 1, resp.AttendanceStats.Sick)
}

func TestDashboardService_GetDashboard_Empty(t *testing.T) {
	resp, err := NewDashboardService(memory.NewAttendanceRepository(nil), fixedClock("2023-10-06")).GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AttendanceStats.Total)
	assert.NotNil(t, resp.RecentAttendance)
	assert.Empty(t, resp.RecentAttendance)
}
