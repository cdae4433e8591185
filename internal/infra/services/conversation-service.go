package services

import (
	"context"
	"fmt"
	"strings"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/provider"
	"lead-connector/internal/util"
)

// conversationPageSize bounds both the candidate list and the message detail
// to one platform page.
const conversationPageSize = 20

// ConversationService resolves a phone key to a remote conversation segment
// and its transcript.
type ConversationService struct {
	Logger   *logger.Logger
	Platform provider.IChatPlatformProvider
}

func NewConversationService(log *logger.Logger, platform provider.IChatPlatformProvider) *ConversationService {
	return &ConversationService{Logger: log, Platform: platform}
}

// Locate returns the conversation segment belonging to phoneKey, or nil.
// Only the first page of 20 conversations is consulted and the first match
// wins, so on a busy account an older thread can shadow a newer one. Auth
// failures, transport errors and an empty list all come back as nil: a lead
// without a conversation is a normal outcome.
func (cs *ConversationService) Locate(ctx context.Context, phoneKey string) *dto.ConversationItem {
	items, err := cs.Platform.ListConversations(ctx, 1, conversationPageSize)
	if err != nil {
		cs.Logger.Warn(fmt.Sprintf("Conversation lookup failed for %s: %v", phoneKey, err))
		return nil
	}

	return MatchSegment(items, phoneKey)
}

// MatchSegment picks the first candidate whose user code contains the phone
// key once both sides are stripped of whitespace, "+" and "-". This is a
// best-effort heuristic over a composite identifier, not an exact match.
func MatchSegment(items []dto.ConversationItem, phoneKey string) *dto.ConversationItem {
	needle := util.StripPhoneNoise(phoneKey)
	if needle == "" {
		return nil
	}

	for i := range items {
		if strings.Contains(util.StripPhoneNoise(items[i].UserCode), needle) {
			return &items[i]
		}
	}
	return nil
}

// FetchTranscript pulls the segment's first page of messages and flattens
// them into "sender: content" lines. Any failure degrades to ("", false);
// transcript retrieval must never abort the caller.
func (cs *ConversationService) FetchTranscript(ctx context.Context, segment *dto.ConversationItem) (string, bool) {
	if segment == nil {
		return "", false
	}

	detail, err := cs.Platform.ConversationDetail(ctx, segment.SegmentCode, conversationPageSize)
	if err != nil {
		cs.Logger.Warn(fmt.Sprintf("Transcript fetch failed for segment %s: %v", segment.SegmentCode, err))
		return "", false
	}

	if len(detail.Data) == 0 {
		return "", false
	}

	var b strings.Builder
	for _, message := range detail.Data {
		fmt.Fprintf(&b, "%s: %s\n", message.Sender, message.Content)
	}
	return b.String(), true
}
