package services

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-connector/internal/domain/dto"
)

// fakeChatPlatform scripts the provider boundary for service tests.
type fakeChatPlatform struct {
	listItems []dto.ConversationItem
	listErr   error
	listCalls int

	detail      *dto.ConversationDetailResponse
	detailErr   error
	detailCalls int
}

func (f *fakeChatPlatform) ListConversations(ctx context.Context, page, pageSize int) ([]dto.ConversationItem, error) {
	f.listCalls++
	return f.listItems, f.listErr
}

func (f *fakeChatPlatform) ConversationDetail(ctx context.Context, segmentCode string, pageSize int) (*dto.ConversationDetailResponse, error) {
	f.detailCalls++
	return f.detail, f.detailErr
}

func TestMatchSegment(t *testing.T) {
	t.Parallel()

	candidates := []dto.ConversationItem{
		{UserCode: "wa_525511112222", SegmentCode: "S1"},
		{UserCode: "wa_525599998888", SegmentCode: "S2"},
	}

	t.Run("substring match picks the owning segment", func(t *testing.T) {
		got := MatchSegment(candidates, "525599998888")
		require.NotNil(t, got)
		assert.Equal(t, "S2", got.SegmentCode)
	})

	t.Run("no candidate contains the key", func(t *testing.T) {
		assert.Nil(t, MatchSegment(candidates, "525500000000"))
	})

	t.Run("formatting noise is stripped on both sides", func(t *testing.T) {
		noisy := []dto.ConversationItem{
			{UserCode: "wa_+52 55 9999-8888", SegmentCode: "S9"},
		}
		got := MatchSegment(noisy, "+52-55-9999-8888")
		require.NotNil(t, got)
		assert.Equal(t, "S9", got.SegmentCode)
	})

	t.Run("first match wins in returned order", func(t *testing.T) {
		dupes := []dto.ConversationItem{
			{UserCode: "wa_525599998888_old", SegmentCode: "OLD"},
			{UserCode: "wa_525599998888_new", SegmentCode: "NEW"},
		}
		got := MatchSegment(dupes, "525599998888")
		require.NotNil(t, got)
		assert.Equal(t, "OLD", got.SegmentCode)
	})

	t.Run("empty key never matches", func(t *testing.T) {
		assert.Nil(t, MatchSegment(candidates, ""))
	})
}

func TestLocate_PlatformFailureMeansAbsence(t *testing.T) {
	t.Parallel()

	platform := &fakeChatPlatform{listErr: eris.New("connection refused")}
	cs := NewConversationService(testLogger(t), platform)

	assert.Nil(t, cs.Locate(context.Background(), "525599998888"))
	assert.Equal(t, 1, platform.listCalls)
}

func TestLocate_EmptyListMeansAbsence(t *testing.T) {
	t.Parallel()

	platform := &fakeChatPlatform{}
	cs := NewConversationService(testLogger(t), platform)

	assert.Nil(t, cs.Locate(context.Background(), "525599998888"))
}

func TestFetchTranscript_FlattensMessages(t *testing.T) {
	t.Parallel()

	platform := &fakeChatPlatform{
		detail: &dto.ConversationDetailResponse{
			Code:  200,
			Total: 2,
			Data: []dto.ConversationMessage{
				{Sender: "user", Content: "Do you have red sneakers?"},
				{Sender: "agent", Content: "Yes, sizes 38 to 44."},
			},
		},
	}
	cs := NewConversationService(testLogger(t), platform)

	transcript, ok := cs.FetchTranscript(context.Background(), &dto.ConversationItem{SegmentCode: "S2"})

	require.True(t, ok)
	assert.Equal(t, "user: Do you have red sneakers?\nagent: Yes, sizes 38 to 44.\n", transcript)
}

func TestFetchTranscript_FailureDegradesToSkip(t *testing.T) {
	t.Parallel()

	platform := &fakeChatPlatform{detailErr: eris.New("timeout")}
	cs := NewConversationService(testLogger(t), platform)

	transcript, ok := cs.FetchTranscript(context.Background(), &dto.ConversationItem{SegmentCode: "S1"})

	assert.False(t, ok)
	assert.Empty(t, transcript)
}

func TestFetchTranscript_EmptyDetail(t *testing.T) {
	t.Parallel()

	platform := &fakeChatPlatform{detail: &dto.ConversationDetailResponse{Code: 200}}
	cs := NewConversationService(testLogger(t), platform)

	_, ok := cs.FetchTranscript(context.Background(), &dto.ConversationItem{SegmentCode: "S1"})
	assert.False(t, ok)

	_, ok = cs.FetchTranscript(context.Background(), nil)
	assert.False(t, ok)
}
