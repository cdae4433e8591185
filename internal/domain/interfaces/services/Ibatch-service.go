package Iservices

import (
	"context"

	"lead-connector/internal/domain/dto"
)

// IBatchSummaryService refreshes the conversation summary of every stored
// lead in one sequential pass.
type IBatchSummaryService interface {
	RunBatch(ctx context.Context) (dto.BatchReport, error)
}
