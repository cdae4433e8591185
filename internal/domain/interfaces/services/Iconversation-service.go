package Iservices

import (
	"context"

	"lead-connector/internal/domain/dto"
)

// IConversationService resolves a phone key to its remote conversation and
// transcript. Absence is a normal outcome on both calls, never an error.
type IConversationService interface {
	// Locate returns the first conversation segment whose user code contains
	// the phone key, or nil when none matches or the platform is unreachable.
	Locate(ctx context.Context, phoneKey string) *dto.ConversationItem

	// FetchTranscript flattens the segment's message detail into plain text.
	// The second return is false when no transcript could be retrieved.
	FetchTranscript(ctx context.Context, segment *dto.ConversationItem) (string, bool)
}
