package dailyreport

import "context"

type DailyReportService interface {
	Create(ctx context.Context, req RawDailyReport) (DailyReportResponse, error)
	Get(ctx context.Context, employeeID string, date string) (DailyReportResponse, error)
	Update(ctx context.Context, employeeID string, date string, req UpdateDailyReportRequest) (DailyReportResponse, error)
	Delete(ctx context.Context, employeeID string, date string) error
	List(ctx context.Context, req ListDailyReportsRequest) ([]DailyReportResponse, error)
}
