package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/infra/services"
)

type fakeBatchService struct {
	report dto.BatchReport
	err    error
}

func (f *fakeBatchService) RunBatch(ctx context.Context) (dto.BatchReport, error) {
	return f.report, f.err
}

func TestGenerateSummaryBatch_ReturnsReport(t *testing.T) {
	t.Parallel()

	svc := &fakeBatchService{report: dto.BatchReport{
		Processed: 2,
		Skipped:   1,
		Message:   "Summarized 2 leads, 1 skipped or failed.",
	}}
	sh := NewSummaryHandlers(testLogger(t), svc)

	req := httptest.NewRequest(http.MethodPost, "/generate-summary", nil)
	rec := httptest.NewRecorder()
	sh.GenerateSummaryBatch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, dto.StatusSuccess, envelope.Status)
	assert.Equal(t, svc.report.Message, envelope.Message)
}

func TestGenerateSummaryBatch_Conflict(t *testing.T) {
	t.Parallel()

	sh := NewSummaryHandlers(testLogger(t), &fakeBatchService{err: services.ErrBatchAlreadyRunning})

	req := httptest.NewRequest(http.MethodPost, "/generate-summary", nil)
	rec := httptest.NewRecorder()
	sh.GenerateSummaryBatch(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.CodeConflict, decodeEnvelope(t, rec).Error)
}
