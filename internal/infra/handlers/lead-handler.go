package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"lead-connector/internal/domain/dto"
	domainrepo "lead-connector/internal/domain/interfaces/repository"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/services"
)

type LeadHandlers struct {
	Logger      *logger.Logger
	LeadService Iservices.ILeadService
}

func NewLeadHandlers(log *logger.Logger, leadService Iservices.ILeadService) *LeadHandlers {
	return &LeadHandlers{Logger: log, LeadService: leadService}
}

// SaveLead persists or updates a contact keyed by phone number. Known fields
// are phone_number and source; everything else in the body is stored
// verbatim as free-form attributes.
func (lh *LeadHandlers) SaveLead(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "Invalid JSON payload")
		return
	}
	defer r.Body.Close()

	rawPhone, _ := body["phone_number"].(string)
	if strings.TrimSpace(rawPhone) == "" {
		writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "phone_number is required")
		return
	}

	source, _ := body["source"].(string)
	delete(body, "phone_number")
	delete(body, "source")

	input := dto.SaveLeadInput{
		RawPhone:   rawPhone,
		Source:     source,
		Attributes: body,
	}

	result, err := lh.LeadService.SaveLead(r.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrEmptyPhoneKey) {
			writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "phone_number is required")
			return
		}
		writeError(w, http.StatusInternalServerError, dto.CodeStorage, "Could not save the lead")
		return
	}

	if result.Created {
		writeSuccess(w, http.StatusCreated, "New lead registered", result)
		return
	}
	writeSuccess(w, http.StatusOK, "Lead updated", result)
}

// GetLead returns the stored record for a phone number.
func (lh *LeadHandlers) GetLead(w http.ResponseWriter, r *http.Request) {
	rawPhone := mux.Vars(r)["phone"]

	lead, err := lh.LeadService.GetLead(r.Context(), rawPhone)
	if err != nil {
		switch {
		case errors.Is(err, domainrepo.ErrNotFound):
			writeError(w, http.StatusNotFound, dto.CodeNotFound, "Lead not found")
		case errors.Is(err, services.ErrEmptyPhoneKey):
			writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "phone is required")
		default:
			writeError(w, http.StatusInternalServerError, dto.CodeStorage, "Could not load the lead")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Lead found", lead)
}
