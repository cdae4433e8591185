package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"lead-connector/internal/config"
	"lead-connector/internal/domain/dto"
	"lead-connector/internal/infra/logger"
)

// User-facing sentinels. Summarize never returns an error; every failure
// mode maps to one of these so the caller can persist something readable.
const (
	MsgNothingToSummarize = "There is no conversation content to summarize."
	MsgSummaryTimeout     = "The summarization service took too long to respond."
	MsgSummaryUnavailable = "The summarization service is unavailable right now."
	MsgSummaryFailed      = "Could not generate a summary for this conversation."
	MsgSummaryNoAnswer    = "The summarization service returned no answer."
)

// SummaryService forwards transcripts to the summarization agent and
// extracts the answer.
type SummaryService struct {
	Logger     *logger.Logger
	HttpClient *http.Client

	endpoint   string
	agentID    string
	agentToken string
	accountID  string
}

func NewSummaryService(cfg *config.Config, log *logger.Logger, httpClient *http.Client) *SummaryService {
	return &SummaryService{
		Logger:     log,
		HttpClient: httpClient,
		endpoint:   cfg.SummaryAgentURL,
		agentID:    cfg.SummaryAgentID,
		agentToken: cfg.SummaryAgentToken,
		accountID:  cfg.AccountID,
	}
}

// Summarize sends the payload as the agent's question and returns its
// answer. Empty payloads are rejected locally without a network call.
func (ss *SummaryService) Summarize(ctx context.Context, payload string) string {
	if strings.TrimSpace(payload) == "" {
		return MsgNothingToSummarize
	}

	request := dto.SummaryRequest{
		AccountID: ss.accountID,
		Question:  payload,
	}

	body, err := json.Marshal(request)
	if err != nil {
		ss.Logger.Error(fmt.Sprintf("Failed to marshal summary request: %v", err))
		return MsgSummaryFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ss.endpoint, bytes.NewReader(body))
	if err != nil {
		ss.Logger.Error(fmt.Sprintf("Failed to create summary request: %v", err))
		return MsgSummaryFailed
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Agent-ID", ss.agentID)
	req.Header.Set("X-Agent-Token", ss.agentToken)

	res, err := ss.HttpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			ss.Logger.Warn(fmt.Sprintf("Summary request timed out: %v", err))
			return MsgSummaryTimeout
		}
		ss.Logger.Error(fmt.Sprintf("Summary request failed: %v", err))
		return MsgSummaryFailed
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		ss.Logger.Warn(fmt.Sprintf("Summary service returned HTTP %s", res.Status))
		return MsgSummaryUnavailable
	}

	var response dto.SummaryResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		ss.Logger.Error(fmt.Sprintf("Failed to decode summary response: %v", err))
		return MsgSummaryFailed
	}

	answer := strings.TrimSpace(response.Data.Answer)
	if answer == "" {
		return MsgSummaryNoAnswer
	}

	return answer
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
