package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"lead-connector/internal/domain/dto"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/logger"
)

type QueryHandlers struct {
	Logger         *logger.Logger
	QueryAIService Iservices.IQueryAIService
}

func NewQueryHandlers(log *logger.Logger, queryAIService Iservices.IQueryAIService) *QueryHandlers {
	return &QueryHandlers{Logger: log, QueryAIService: queryAIService}
}

// Ask forwards a natural-language catalog question to the query agent and
// returns its answer.
func (qh *QueryHandlers) Ask(w http.ResponseWriter, r *http.Request) {
	var body dto.QueryAIRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "Invalid JSON payload")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(body.Question) == "" {
		writeError(w, http.StatusBadRequest, dto.CodeBadRequest, "question is required")
		return
	}

	answer, err := qh.QueryAIService.Ask(r.Context(), body.Question, body.NotifyPhone)
	if err != nil {
		writeError(w, http.StatusBadGateway, dto.CodeUpstream, "The catalog query agent could not answer")
		return
	}

	writeSuccess(w, http.StatusOK, "Question answered", answer)
}
