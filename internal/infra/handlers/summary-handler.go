package handlers

import (
	"errors"
	"net/http"

	"lead-connector/internal/domain/dto"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/services"
)

type SummaryHandlers struct {
	Logger       *logger.Logger
	BatchService Iservices.IBatchSummaryService
}

func NewSummaryHandlers(log *logger.Logger, batchService Iservices.IBatchSummaryService) *SummaryHandlers {
	return &SummaryHandlers{Logger: log, BatchService: batchService}
}

// GenerateSummaryBatch runs one full pass over all stored leads and refreshes
// their conversation summaries. The run is synchronous; the response carries
// the aggregate report.
func (sh *SummaryHandlers) GenerateSummaryBatch(w http.ResponseWriter, r *http.Request) {
	report, err := sh.BatchService.RunBatch(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrBatchAlreadyRunning) {
			writeError(w, http.StatusConflict, dto.CodeConflict, "A summary batch is already running")
			return
		}
		writeError(w, http.StatusInternalServerError, dto.CodeStorage, "Batch run could not start")
		return
	}

	writeSuccess(w, http.StatusOK, report.Message, report)
}
