package payslip

import (
	"bytes"
	"testing"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleBreakdown(id string) payroll.BreakdownResponse {
	return payroll.BreakdownResponse{
		EmployeeID:       id,
		PayScaleID:       "default",
		PayScaleVersion:  3,
		PeriodStart:      "2024-05-01",
		PeriodEnd:        "2024-06-01",
		BasicSalary:      decimal.NewFromInt(15000),
		AbsenceDeduction: decimal.NewFromInt(500),
		OvertimePay:      decimal.RequireFromString("111.1"),
		TotalSalary:      decimal.RequireFromString("14611.1"),
		LineItems: []payroll.LineItemResponse{
			{Category: payroll.CategoryAbsence, Date: "2024-05-02", Quantity: decimal.NewFromInt(1), Text: "2024-05-02: absent"},
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, []payroll.BreakdownResponse{sampleBreakdown("emp-1"), sampleBreakdown("emp/2")})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, "emp-1", "emp_2"}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee", rows[0][0])
	assert.Equal(t, "emp-1", rows[1][0])
	assert.Equal(t, "default v3", rows[1][3])
	assert.Equal(t, "-500", rows[1][5])
	assert.Equal(t, "14611.1", rows[1][14])

	detail, err := f.GetRows("emp-1")
	require.NoError(t, err)
	last := detail[len(detail)-1]
	assert.Equal(t, []string{"2024-05-02", "absence", "1", "2024-05-02: absent"}, last)
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}

	assert.Equal(t, "Summary~2", sheetName("Summary", used))
	assert.Equal(t, "a_b_c", sheetName("a[b]c", used))
	assert.Equal(t, "A_B_C~2", sheetName("A:B?C", used))
	assert.Equal(t, "employee", sheetName("", used))

	long := sheetName("0123456789012345678901234567890123", used)
	assert.Len(t, long, 27)
}
