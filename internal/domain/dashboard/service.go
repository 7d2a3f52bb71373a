package dashboard

import "context"

type DashboardService interface {
	// GetDashboard returns counters, the check-in banner and recent records
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}
