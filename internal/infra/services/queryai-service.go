package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"

	"lead-connector/internal/config"
	"lead-connector/internal/domain/dto"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/provider"
)

// QueryAIService forwards natural-language catalog questions to the query
// agent, which translates them into SQL against the product catalog and
// answers in natural language. This is a plain forwarding pipeline; the SQL
// itself never executes inside this service.
type QueryAIService struct {
	Logger     *logger.Logger
	HttpClient *http.Client
	Notifier   provider.INotificationProvider

	host string
}

func NewQueryAIService(cfg *config.Config, log *logger.Logger, httpClient *http.Client, notifier provider.INotificationProvider) *QueryAIService {
	return &QueryAIService{
		Logger:     log,
		HttpClient: httpClient,
		Notifier:   notifier,
		host:       cfg.QueryAIHost,
	}
}

// Ask sends the question to the query agent and returns its answer. When
// notifyPhone is set the answer is also delivered over WhatsApp; delivery
// failures are logged, never surfaced to the caller.
func (qs *QueryAIService) Ask(ctx context.Context, question string, notifyPhone string) (dto.QueryAIResponse, error) {
	if qs.host == "" {
		err := eris.New("QUERY_AI_API_HOST environment variable not set")
		qs.Logger.Error(err.Error())
		return dto.QueryAIResponse{}, err
	}

	payload := map[string]string{"question": question}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to marshal query payload: %v", err))
		return dto.QueryAIResponse{}, eris.Wrap(err, "marshal query payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, qs.host+"/query", bytes.NewReader(payloadBytes))
	if err != nil {
		return dto.QueryAIResponse{}, eris.Wrap(err, "create query request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := qs.HttpClient.Do(req)
	if err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to send query request: %v", err))
		return dto.QueryAIResponse{}, eris.Wrap(err, "query request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		qs.Logger.Error(fmt.Sprintf("Query agent returned HTTP %s", resp.Status))
		return dto.QueryAIResponse{}, eris.Errorf("query agent unexpected HTTP status %d", resp.StatusCode)
	}

	var queryResponse dto.QueryAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResponse); err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to decode query response: %v", err))
		return dto.QueryAIResponse{}, eris.Wrap(err, "decode query response")
	}

	if notifyPhone != "" && queryResponse.Answer != "" {
		if err := qs.Notifier.SendTextMessage(notifyPhone, queryResponse.Answer); err != nil {
			qs.Logger.Warn(fmt.Sprintf("Failed to deliver answer to %s: %v", notifyPhone, err))
		}
	}

	return queryResponse, nil
}
