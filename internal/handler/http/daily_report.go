package http

import (
	"encoding/json"
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DailyReportHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type dailyReportHandlerImpl struct {
	dailyReportService dailyreport.DailyReportService
}

func NewDailyReportHandler(dailyReportService dailyreport.DailyReportService) DailyReportHandler {
	return &dailyReportHandlerImpl{dailyReportService: dailyReportService}
}

func (h *dailyReportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req dailyreport.RawDailyReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.dailyReportService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Daily report created successfully", result)
}

func (h *dailyReportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if err := authorizeEmployee(r, employeeID, user.PermissionReportViewAll); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dailyReportService.Get(r.Context(), employeeID, chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dailyReportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if err := authorizeEmployee(r, employeeID, user.PermissionReportViewAll); err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	results, err := h.dailyReportService.List(r.Context(), dailyreport.ListDailyReportsRequest{
		EmployeeID: employeeID,
		StartDate:  q.Get("start"),
		EndDate:    q.Get("end"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results)
}

func (h *dailyReportHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req dailyreport.UpdateDailyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.dailyReportService.Update(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "date"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily report updated successfully", result)
}

func (h *dailyReportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.dailyReportService.Delete(r.Context(), chi.URLParam(r, "employeeId"), chi.URLParam(r, "date")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Daily report deleted successfully"})
}
