package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/domain/entities"
	domainrepo "lead-connector/internal/domain/interfaces/repository"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/logger"
)

// ErrBatchAlreadyRunning is returned when a batch run is requested while a
// previous one is still walking the store. Overlapping runs would race on
// the same summary fields.
var ErrBatchAlreadyRunning = errors.New("a summary batch is already running")

// BatchSummaryService walks every lead with a phone key and refreshes its
// conversation summary: locate -> fetch transcript -> summarize -> persist.
// Leads are processed strictly one at a time and every per-lead failure is
// absorbed locally, so one bad record never aborts the rest of the run.
type BatchSummaryService struct {
	Logger        *logger.Logger
	Leads         domainrepo.LeadRepository
	Conversations Iservices.IConversationService
	Summaries     Iservices.ISummaryService

	running atomic.Bool
}

func NewBatchSummaryService(
	log *logger.Logger,
	leads domainrepo.LeadRepository,
	conversations Iservices.IConversationService,
	summaries Iservices.ISummaryService,
) *BatchSummaryService {
	return &BatchSummaryService{
		Logger:        log,
		Leads:         leads,
		Conversations: conversations,
		Summaries:     summaries,
	}
}

// RunBatch streams the store cursor to exhaustion and reports aggregate
// counts. Only a failure to open or advance the cursor itself fails the run.
func (bs *BatchSummaryService) RunBatch(ctx context.Context) (dto.BatchReport, error) {
	if !bs.running.CompareAndSwap(false, true) {
		return dto.BatchReport{}, ErrBatchAlreadyRunning
	}
	defer bs.running.Store(false)

	runID := uuid.NewString()
	bs.Logger.Info("Starting summary batch run", logrus.Fields{"run_id": runID})

	cursor, err := bs.Leads.ScanWithPhoneKey(ctx)
	if err != nil {
		return dto.BatchReport{}, eris.Wrap(err, "open lead scan")
	}
	defer cursor.Close(ctx)

	var processed, skipped int
	for cursor.Next(ctx) {
		var lead entities.Lead
		if err := cursor.Decode(&lead); err != nil {
			skipped++
			bs.Logger.Error("Failed to decode lead from cursor", logrus.Fields{
				"run_id": runID, "stage": "decode", "error": err.Error(),
			})
			continue
		}

		if bs.summarizeLead(ctx, runID, lead) {
			processed++
		} else {
			skipped++
		}
	}
	if err := cursor.Err(); err != nil {
		return dto.BatchReport{}, eris.Wrap(err, "walk lead scan")
	}

	report := dto.BatchReport{
		Processed: processed,
		Skipped:   skipped,
		Message:   fmt.Sprintf("Summarized %d leads, %d skipped or failed.", processed, skipped),
	}
	bs.Logger.Info("Summary batch run finished", logrus.Fields{
		"run_id": runID, "processed": processed, "skipped": skipped,
	})
	return report, nil
}

// summarizeLead drives one lead through the pipeline and reports whether it
// reached the persisted state. Failures are logged per stage with the run id
// so operators can diagnose skips that the aggregate report hides.
func (bs *BatchSummaryService) summarizeLead(ctx context.Context, runID string, lead entities.Lead) bool {
	segment := bs.Conversations.Locate(ctx, lead.PhoneKey)
	if segment == nil {
		bs.Logger.Warn("No conversation segment found for lead", logrus.Fields{
			"run_id": runID, "phone_key": lead.PhoneKey, "stage": "locate",
		})
		return false
	}

	transcript, ok := bs.Conversations.FetchTranscript(ctx, segment)
	if !ok {
		bs.Logger.Warn("No transcript retrieved for lead", logrus.Fields{
			"run_id": runID, "phone_key": lead.PhoneKey, "segment_code": segment.SegmentCode, "stage": "fetch",
		})
		return false
	}

	summary := bs.Summaries.Summarize(ctx, transcript)

	fields := map[string]any{
		"summary":         summary,
		"last_summary_at": time.Now().UTC(),
	}
	if err := bs.Leads.UpdateFields(ctx, lead.ID, fields); err != nil {
		bs.Logger.Error("Failed to persist summary for lead", logrus.Fields{
			"run_id": runID, "phone_key": lead.PhoneKey, "stage": "persist", "error": err.Error(),
		})
		return false
	}

	return true
}
