package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/domain/entities"
	domainrepo "lead-connector/internal/domain/interfaces/repository"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/util"
)

// ErrEmptyPhoneKey is returned when a raw identifier normalizes to nothing
// usable as a lookup key.
var ErrEmptyPhoneKey = errors.New("phone key is empty after normalization")

// LeadService owns the single-lead save and lookup paths.
type LeadService struct {
	Logger *logger.Logger
	Leads  domainrepo.LeadRepository
}

func NewLeadService(log *logger.Logger, leads domainrepo.LeadRepository) *LeadService {
	return &LeadService{Logger: log, Leads: leads}
}

// SaveLead normalizes the raw identifier into the canonical phone key and
// upserts the lead. Calling it twice with the same key updates fields in
// place; the store never holds two records for one key and the original
// created_at survives later writes.
func (ls *LeadService) SaveLead(ctx context.Context, input dto.SaveLeadInput) (dto.SaveLeadResult, error) {
	phoneKey := util.NormalizePhoneKey(strings.TrimSpace(input.RawPhone))
	if phoneKey == "" {
		return dto.SaveLeadResult{}, ErrEmptyPhoneKey
	}

	source := input.Source
	if source == "" {
		source = entities.DefaultSource
	}

	fields := map[string]any{"source": source}
	if len(input.Attributes) > 0 {
		fields["attributes"] = input.Attributes
	}

	created, err := ls.Leads.Upsert(ctx, phoneKey, fields)
	if err != nil {
		ls.Logger.Error(fmt.Sprintf("Failed to upsert lead %s: %v", phoneKey, err))
		return dto.SaveLeadResult{}, err
	}

	return dto.SaveLeadResult{PhoneKey: phoneKey, Created: created}, nil
}

// GetLead looks up a lead by its raw identifier. A miss surfaces as
// repository.ErrNotFound, not as a failure.
func (ls *LeadService) GetLead(ctx context.Context, rawPhone string) (entities.Lead, error) {
	phoneKey := util.NormalizePhoneKey(strings.TrimSpace(rawPhone))
	if phoneKey == "" {
		return entities.Lead{}, ErrEmptyPhoneKey
	}

	lead, err := ls.Leads.FindByPhoneKey(ctx, phoneKey)
	if err != nil {
		if !errors.Is(err, domainrepo.ErrNotFound) {
			ls.Logger.Error(fmt.Sprintf("Failed to find lead %s: %v", phoneKey, err))
		}
		return entities.Lead{}, err
	}

	return lead, nil
}
