package Iservices

import (
	"context"

	"lead-connector/internal/domain/dto"
)

type IQueryAIService interface {
	// Ask forwards a natural-language catalog question to the query agent and
	// returns its answer. When notifyPhone is set the answer is also
	// delivered over WhatsApp, best effort.
	Ask(ctx context.Context, question string, notifyPhone string) (dto.QueryAIResponse, error)
}
