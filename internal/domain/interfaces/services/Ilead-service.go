package Iservices

import (
	"context"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/domain/entities"
)

// ILeadService defines the single-lead save and lookup operations.
type ILeadService interface {
	SaveLead(ctx context.Context, input dto.SaveLeadInput) (dto.SaveLeadResult, error)
	GetLead(ctx context.Context, rawPhone string) (entities.Lead, error)
}
