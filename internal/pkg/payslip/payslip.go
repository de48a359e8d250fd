// Package payslip renders salary breakdowns as an Excel workbook.
package payslip

import (
	"fmt"
	"io"
	"strings"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const SummarySheet = "Summary"

var summaryHeader = []interface{}{
	"Employee", "Period start", "Period end", "Pay scale", "Basic salary",
	"Absence", "Short hours", "Overtime", "Saturday", "KPI bonus", "Spiffs",
	"Butter-up", "Allowance", "Deductions", "Total",
}

// WriteXLSX writes one Summary sheet with a row per breakdown, followed by a
// detail sheet per employee listing components and line items.
func WriteXLSX(w io.Writer, breakdowns []payroll.BreakdownResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(SummarySheet, 1, 1, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "C", 14); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(SummarySheet): true}
	for i, b := range breakdowns {
		row := []interface{}{
			b.EmployeeID, b.PeriodStart, b.PeriodEnd, fmt.Sprintf("%s v%d", b.PayScaleID, b.PayScaleVersion),
			money(b.BasicSalary), money(b.AbsenceDeduction.Neg()), money(b.ShortHoursDeduction.Neg()),
			money(b.OvertimePay), money(b.SaturdayPay), money(b.KPIBonus), money(b.SpiffBonus),
			money(b.ButterUpBonus), money(b.AllowanceTotal), money(b.ManualDeductionsTotal.Neg()),
			money(b.TotalSalary),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}

		if err := writeDetail(f, sheetName(b.EmployeeID, used), b, bold); err != nil {
			return fmt.Errorf("failed to write sheet for employee %s: %w", b.EmployeeID, err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeDetail(f *excelize.File, sheet string, b payroll.BreakdownResponse, bold int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Employee", b.EmployeeID},
		{"Period", b.PeriodStart + " to " + b.PeriodEnd},
		{"Pay scale", fmt.Sprintf("%s v%d", b.PayScaleID, b.PayScaleVersion)},
		{},
		{"Component", "Amount"},
		{"Basic salary", money(b.BasicSalary)},
		{"Absence deduction", money(b.AbsenceDeduction.Neg())},
		{"Short hours deduction", money(b.ShortHoursDeduction.Neg())},
		{"Overtime pay", money(b.OvertimePay)},
		{"Saturday pay", money(b.SaturdayPay)},
		{"KPI bonus", money(b.KPIBonus)},
		{"Spiff bonus", money(b.SpiffBonus)},
		{"Butter-up bonus", money(b.ButterUpBonus)},
		{"Allowance", money(b.AllowanceTotal)},
		{"Manual deductions", money(b.ManualDeductionsTotal.Neg())},
		{"Total", money(b.TotalSalary)},
		{},
		{"Date", "Category", "Quantity", "Detail"},
	}
	for _, li := range b.LineItems {
		rows = append(rows, []interface{}{li.Date, string(li.Category), li.Quantity.InexactFloat64(), li.Text})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	for _, r := range []int{5, 16, 18} {
		if err := f.SetRowStyle(sheet, r, r, bold); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "D", "D", 60)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// sheetName derives a unique, valid sheet name from an employee id. Sheet
// names are case-insensitive and limited to 31 characters.
func sheetName(employeeID string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, employeeID)
	if name == "" {
		name = "employee"
	}
	if runes := []rune(name); len(runes) > 27 {
		name = string(runes[:27])
	}

	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		candidate = fmt.Sprintf("%s~%d", name, i)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
