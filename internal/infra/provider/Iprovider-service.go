package provider

import (
	"context"

	"lead-connector/internal/domain/dto"
)

// IChatPlatformProvider is the outbound boundary to the conversation
// platform's list and detail operations.
type IChatPlatformProvider interface {
	ListConversations(ctx context.Context, page, pageSize int) ([]dto.ConversationItem, error)
	ConversationDetail(ctx context.Context, segmentCode string, pageSize int) (*dto.ConversationDetailResponse, error)
}

// INotificationProvider delivers outbound WhatsApp messages.
type INotificationProvider interface {
	SendTextMessage(to, message string) error
	GenerateOAuth2Token() (*dto.TokenResponse, error)
}
