package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ronesego-ui/captop/internal/adapter/http/dto"
	"github.com/ronesego-ui/captop/internal/usecase"
)

// CompanyHandler handles company-related HTTP requests.
type CompanyHandler struct {
	simulationUC *usecase.SimulationUseCase
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(simulationUC *usecase.SimulationUseCase) *CompanyHandler {
	return &CompanyHandler{simulationUC: simulationUC}
}

// Create registers a company with its seeded opening ledger.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	company, err := h.simulationUC.CreateCompany(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		if status == http.StatusInternalServerError {
			// An unbalanced seed is the client's mistake.
			status = http.StatusBadRequest
		}
		writeError(w, status, "failed to create company", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.CompanyFromDomain(company))
}

// Get retrieves a company by ID.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing company ID", "")
		return
	}

	company, err := h.simulationUC.GetCompany(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get company", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CompanyFromDomain(company))
}

// List lists registered companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	companies, err := h.simulationUC.ListCompanies(r.Context(), usecase.ListCompaniesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list companies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CompaniesFromDomain(companies))
}
