package dailyreport

import (
	"context"
	"time"
)

type DailyReportRepository interface {
	// Create fails with ErrDuplicateDailyReport when the employee already has
	// a report on that date.
	Create(ctx context.Context, r DailyRecord) (DailyRecord, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (DailyRecord, error)
	Update(ctx context.Context, r DailyRecord) (DailyRecord, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error
	// FindByEmployeeAndRange returns the employee's reports with start <= date < end.
	FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyRecord, error)
}
