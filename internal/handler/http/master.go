package http

import (
	"encoding/json"
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/response"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Pay scale handlers
	GetPayScale(w http.ResponseWriter, r *http.Request)
	ListPayScales(w http.ResponseWriter, r *http.Request)
	UpsertPayScale(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== PAY SCALE HANDLERS ====================

func (h *masterHandlerImpl) GetPayScale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetPayScale(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListPayScales(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListPayScales(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results)
}

func (h *masterHandlerImpl) UpsertPayScale(w http.ResponseWriter, r *http.Request) {
	var req payscale.UpsertPayScaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpsertPayScale(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay scale saved successfully", result)
}
