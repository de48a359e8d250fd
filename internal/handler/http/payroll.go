package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/response"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/payslip"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	// Single employee
	GetBreakdown(w http.ResponseWriter, r *http.Request)
	ExportBreakdown(w http.ResponseWriter, r *http.Request)

	// Batch
	CalculateBatch(w http.ResponseWriter, r *http.Request)
	ExportBatch(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== SINGLE EMPLOYEE ==========

func (h *payrollHandlerImpl) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	result, ok := h.calculate(w, r)
	if !ok {
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ExportBreakdown(w http.ResponseWriter, r *http.Request) {
	result, ok := h.calculate(w, r)
	if !ok {
		return
	}

	b := result.Breakdown
	writeWorkbook(w, fmt.Sprintf("salary-%s-%s.xlsx", b.EmployeeID, b.PeriodStart), []payroll.BreakdownResponse{b})
}

// ========== BATCH ==========

func (h *payrollHandlerImpl) CalculateBatch(w http.ResponseWriter, r *http.Request) {
	result, ok := h.calculateBatch(w, r)
	if !ok {
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ExportBatch(w http.ResponseWriter, r *http.Request) {
	result, ok := h.calculateBatch(w, r)
	if !ok {
		return
	}

	breakdowns := make([]payroll.BreakdownResponse, 0, len(result.Results))
	for _, res := range result.Results {
		breakdowns = append(breakdowns, res.Breakdown)
	}
	writeWorkbook(w, fmt.Sprintf("salary-batch-%s.xlsx", result.PeriodStart), breakdowns)
}

// ========== HELPERS ==========

func (h *payrollHandlerImpl) calculate(w http.ResponseWriter, r *http.Request) (payroll.SalaryResponse, bool) {
	employeeID := chi.URLParam(r, "employeeId")
	if err := authorizeEmployee(r, employeeID, user.PermissionSalaryViewAll); err != nil {
		response.HandleError(w, err)
		return payroll.SalaryResponse{}, false
	}

	q := r.URL.Query()
	// Only callers who see every salary may price against a non-default scale.
	if q.Get("pay_scale_id") != "" && !hasPermission(r, user.PermissionSalaryViewAll) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return payroll.SalaryResponse{}, false
	}

	req := payroll.CalculateSalaryRequest{
		EmployeeID: employeeID,
		PayScaleID: q.Get("pay_scale_id"),
		Month:      q.Get("month"),
		StartDate:  q.Get("start"),
		EndDate:    q.Get("end"),
	}

	result, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return payroll.SalaryResponse{}, false
	}
	return result, true
}

func (h *payrollHandlerImpl) calculateBatch(w http.ResponseWriter, r *http.Request) (payroll.BatchSalaryResponse, bool) {
	var req payroll.BatchCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return payroll.BatchSalaryResponse{}, false
	}

	result, err := h.payrollService.CalculateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return payroll.BatchSalaryResponse{}, false
	}
	return result, true
}

func writeWorkbook(w http.ResponseWriter, filename string, breakdowns []payroll.BreakdownResponse) {
	var buf bytes.Buffer
	if err := payslip.WriteXLSX(&buf, breakdowns); err != nil {
		response.HandleError(w, fmt.Errorf("failed to render workbook: %w", err))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
