package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
)

type reportKey struct {
	EmployeeID string
	Date       time.Time
}

type dailyReportRepository struct {
	mu      sync.RWMutex
	reports map[reportKey]dailyreport.DailyRecord
}

func NewDailyReportRepository() dailyreport.DailyReportRepository {
	return &dailyReportRepository{
		reports: make(map[reportKey]dailyreport.DailyRecord),
	}
}

func keyOf(employeeID string, date time.Time) reportKey {
	return reportKey{EmployeeID: employeeID, Date: date.UTC()}
}

func (r *dailyReportRepository) Create(_ context.Context, rec dailyreport.DailyRecord) (dailyreport.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(rec.EmployeeID, rec.Date)
	if _, exists := r.reports[k]; exists {
		return dailyreport.DailyRecord{}, dailyreport.ErrDuplicateDailyReport
	}
	ts := now()
	rec.CreatedAt = ts
	rec.UpdatedAt = ts
	r.reports[k] = rec
	return rec, nil
}

func (r *dailyReportRepository) GetByEmployeeDate(_ context.Context, employeeID string, date time.Time) (dailyreport.DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.reports[keyOf(employeeID, date)]
	if !ok {
		return dailyreport.DailyRecord{}, dailyreport.ErrDailyReportNotFound
	}
	return rec, nil
}

func (r *dailyReportRepository) Update(_ context.Context, rec dailyreport.DailyRecord) (dailyreport.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(rec.EmployeeID, rec.Date)
	existing, ok := r.reports[k]
	if !ok {
		return dailyreport.DailyRecord{}, dailyreport.ErrDailyReportNotFound
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = now()
	r.reports[k] = rec
	return rec, nil
}

func (r *dailyReportRepository) Delete(_ context.Context, employeeID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(employeeID, date)
	if _, ok := r.reports[k]; !ok {
		return dailyreport.ErrDailyReportNotFound
	}
	delete(r.reports, k)
	return nil
}

func (r *dailyReportRepository) FindByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time) ([]dailyreport.DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []dailyreport.DailyRecord
	for k, rec := range r.reports {
		if k.EmployeeID != employeeID {
			continue
		}
		if !k.Date.Before(start) && k.Date.Before(end) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}
