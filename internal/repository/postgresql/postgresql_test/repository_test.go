package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC)
}

func seedEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, id string) employee.Employee {
	t.Helper()
	e, err := repo.Upsert(ctx, employee.Employee{ID: id, Name: "Dana", Tier: employee.TierA, IsAppointmentSetter: true})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository_UpsertAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created := seedEmployee(t, ctx, repo, "emp-1")
	assert.Equal(t, employee.TierA, created.Tier)
	assert.False(t, created.CreatedAt.IsZero())

	position := "closer"
	_, err := repo.Upsert(ctx, employee.Employee{ID: "emp-1", Name: "Dana", Tier: employee.TierB, Position: &position})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, employee.TierB, got.Tier)
	require.NotNil(t, got.Position)
	assert.Equal(t, "closer", *got.Position)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPayScaleRepository_UpsertBumpsVersion(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayScaleRepository(setup.DB)

	scale := payscale.PayScale{
		ID:                     "default",
		Name:                   "Default",
		BaseSalaryByTier:       map[employee.Tier]decimal.Decimal{employee.TierA: decimal.NewFromInt(15000)},
		HourPriceByTier:        map[employee.Tier]decimal.Decimal{employee.TierA: decimal.RequireFromString("55.55")},
		SpiffMultiplier:        decimal.RequireFromString("35.66"),
		KPIMultiplier:          decimal.NewFromInt(2000),
		ButterUpMultiplier:     decimal.NewFromInt(500),
		AllowanceRateByType:    map[string]decimal.Decimal{payscale.AllowanceTravel: decimal.NewFromInt(300)},
		SetterThresholdByTier:  map[employee.Tier]int{employee.TierA: 6},
		FronterThresholdByTier: map[employee.Tier]int{employee.TierA: 9},
	}

	first, err := repo.Upsert(ctx, scale)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)

	second, err := repo.Upsert(ctx, scale)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	got, err := repo.GetByID(ctx, "default")
	require.NoError(t, err)
	assert.True(t, got.HourPriceByTier[employee.TierA].Equal(decimal.RequireFromString("55.55")))
	assert.Equal(t, 6, got.SetterThresholdByTier[employee.TierA])
	assert.True(t, got.AllowanceRateByType[payscale.AllowanceTravel].Equal(decimal.NewFromInt(300)))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, payscale.ErrPayScaleNotFound)
}

func TestDailyReportRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	seedEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "emp-1")
	repo := postgresql.NewDailyReportRepository(setup.DB)

	rec := dailyreport.DailyRecord{
		ID:              "r-1",
		EmployeeID:      "emp-1",
		Date:            day(3),
		IsPresent:       true,
		WorkingHours:    decimal.NewFromInt(9),
		DeductionAmount: decimal.NewFromInt(50),
		DeductionReason: "late",
	}
	created, err := repo.Create(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, day(3), created.Date)

	_, err = repo.Create(ctx, rec)
	assert.ErrorIs(t, err, dailyreport.ErrDuplicateDailyReport)

	rec.WorkingHours = decimal.NewFromInt(11)
	updated, err := repo.Update(ctx, rec)
	require.NoError(t, err)
	assert.True(t, updated.WorkingHours.Equal(decimal.NewFromInt(11)))

	_, err = repo.Create(ctx, dailyreport.DailyRecord{ID: "r-2", EmployeeID: "emp-1", Date: day(31), IsPresent: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, dailyreport.DailyRecord{ID: "r-3", EmployeeID: "emp-1", Date: day(1).AddDate(0, 1, 0), IsPresent: true})
	require.NoError(t, err)

	found, err := repo.FindByEmployeeAndRange(ctx, "emp-1", day(1), day(1).AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, day(3), found[0].Date)
	assert.Equal(t, day(31), found[1].Date)

	require.NoError(t, repo.Delete(ctx, "emp-1", day(3)))
	assert.ErrorIs(t, repo.Delete(ctx, "emp-1", day(3)), dailyreport.ErrDailyReportNotFound)

	_, err = repo.GetByEmployeeDate(ctx, "emp-1", day(3))
	assert.ErrorIs(t, err, dailyreport.ErrDailyReportNotFound)
}

func TestWithTransactionContext_RollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	boom := errors.New("boom")

	err := postgresql.WithTransactionContext(ctx, setup.DB, func(txCtx context.Context, _ pgx.Tx) error {
		if _, err := repo.Upsert(txCtx, employee.Employee{ID: "emp-tx", Tier: employee.TierC}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, "emp-tx")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
