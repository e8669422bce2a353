package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ronesego-ui/captop/internal/adapter/http/dto"
	"github.com/ronesego-ui/captop/internal/usecase"
)

// PeriodHandler handles period simulation HTTP requests.
type PeriodHandler struct {
	simulationUC *usecase.SimulationUseCase
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(simulationUC *usecase.SimulationUseCase) *PeriodHandler {
	return &PeriodHandler{simulationUC: simulationUC}
}

// Advance closes the next period for a company from a posted decision set.
func (h *PeriodHandler) Advance(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company ID", "")
		return
	}

	var req dto.AdvancePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bundle, err := h.simulationUC.AdvancePeriod(r.Context(), companyID, req.ToDecisionSet())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to advance period", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.BundleFromDomain(bundle))
}

// GetStatements retrieves the statement bundle of a closed period.
func (h *PeriodHandler) GetStatements(w http.ResponseWriter, r *http.Request) {
	companyID, period, ok := periodParams(w, r)
	if !ok {
		return
	}

	bundle, err := h.simulationUC.GetStatements(r.Context(), companyID, period)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get statements", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BundleFromDomain(bundle))
}

// GetLedger retrieves the closing ledger of a period.
func (h *PeriodHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	companyID, period, ok := periodParams(w, r)
	if !ok {
		return
	}

	ledger, err := h.simulationUC.GetLedger(r.Context(), companyID, period)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get ledger", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, ledger)
}

func periodParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	companyID := chi.URLParam(r, "id")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company ID", "")
		return "", 0, false
	}

	period, err := strconv.Atoi(chi.URLParam(r, "period"))
	if err != nil || period < 0 {
		writeError(w, http.StatusBadRequest, "invalid period", chi.URLParam(r, "period"))
		return "", 0, false
	}

	return companyID, period, true
}
