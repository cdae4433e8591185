package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"lead-connector/internal/config"
	"lead-connector/internal/domain/dto"
	"lead-connector/internal/infra/logger"
)

const (
	listConversationsPath  = "/api/conversation/list"
	conversationDetailPath = "/api/conversation/detail"

	headerAgentID    = "X-Agent-ID"
	headerAgentToken = "X-Agent-Token"
)

// ChatPlatformProvider calls the conversation platform's list and detail
// operations with the agent credentials and shared account identity from the
// configuration. Requests are throttled so a batch run cannot hammer the
// platform.
type ChatPlatformProvider struct {
	Logger     *logger.Logger
	HttpClient *http.Client

	limiter    *rate.Limiter
	baseURL    string
	agentID    string
	agentToken string
	accountID  string
}

func NewChatPlatformProvider(cfg *config.Config, log *logger.Logger, httpClient *http.Client) *ChatPlatformProvider {
	return &ChatPlatformProvider{
		Logger:     log,
		HttpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		baseURL:    cfg.ChatPlatformURL,
		agentID:    cfg.ChatAgentID,
		agentToken: cfg.ChatAgentToken,
		accountID:  cfg.AccountID,
	}
}

// ListConversations requests one page of the account's conversations. The
// returned list is unordered; the platform promises nothing about recency.
func (p *ChatPlatformProvider) ListConversations(ctx context.Context, page, pageSize int) ([]dto.ConversationItem, error) {
	payload := dto.ConversationListRequest{
		AccountID: p.accountID,
		Page:      page,
		PageSize:  pageSize,
	}

	var response dto.ConversationListResponse
	if err := p.post(ctx, listConversationsPath, payload, &response); err != nil {
		return nil, err
	}

	if response.Code != http.StatusOK {
		return nil, eris.Errorf("chat platform list returned application code %d", response.Code)
	}

	return response.Data, nil
}

// ConversationDetail fetches the message detail of one segment, bounded to a
// single page.
func (p *ChatPlatformProvider) ConversationDetail(ctx context.Context, segmentCode string, pageSize int) (*dto.ConversationDetailResponse, error) {
	payload := dto.ConversationDetailRequest{
		AccountID:   p.accountID,
		SegmentCode: segmentCode,
		Page:        1,
		PageSize:    pageSize,
	}

	var response dto.ConversationDetailResponse
	if err := p.post(ctx, conversationDetailPath, payload, &response); err != nil {
		return nil, err
	}

	if response.Code != http.StatusOK {
		return nil, eris.Errorf("chat platform detail returned application code %d", response.Code)
	}

	return &response, nil
}

func (p *ChatPlatformProvider) post(ctx context.Context, path string, payload any, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "chat platform rate limit wait")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "marshal chat platform payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "create chat platform request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAgentID, p.agentID)
	req.Header.Set(headerAgentToken, p.agentToken)

	res, err := p.HttpClient.Do(req)
	if err != nil {
		return eris.Wrap(err, "chat platform request failed")
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return eris.Wrap(err, "read chat platform response body")
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		p.Logger.Warn(fmt.Sprintf("Chat platform returned HTTP %s for %s", res.Status, path))
		return eris.Errorf("chat platform unexpected HTTP status %d: %s", res.StatusCode, string(responseBody))
	}

	if err := json.Unmarshal(responseBody, out); err != nil {
		return eris.Wrap(err, "unmarshal chat platform response")
	}

	return nil
}
