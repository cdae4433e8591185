package services

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/domain/entities"
	domainrepo "lead-connector/internal/domain/interfaces/repository"
)

// memLeadRepo is an in-memory LeadRepository with the same merge semantics
// as the Mongo implementation: one record per phone key, created_at set only
// on insert.
type memLeadRepo struct {
	order      []string
	leads      map[string]*entities.Lead
	updateErrs map[primitive.ObjectID]error
	updates    []primitive.ObjectID
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{
		leads:      make(map[string]*entities.Lead),
		updateErrs: make(map[primitive.ObjectID]error),
	}
}

func (m *memLeadRepo) Upsert(ctx context.Context, phoneKey string, fields map[string]any) (bool, error) {
	lead, ok := m.leads[phoneKey]
	if !ok {
		lead = &entities.Lead{
			ID:        primitive.NewObjectID(),
			PhoneKey:  phoneKey,
			CreatedAt: time.Now().UTC(),
		}
		m.leads[phoneKey] = lead
		m.order = append(m.order, phoneKey)
	}
	if source, found := fields["source"].(string); found {
		lead.Source = source
	}
	if attrs, found := fields["attributes"].(map[string]any); found {
		lead.Attributes = attrs
	}
	return !ok, nil
}

func (m *memLeadRepo) FindByPhoneKey(ctx context.Context, phoneKey string) (entities.Lead, error) {
	lead, ok := m.leads[phoneKey]
	if !ok {
		return entities.Lead{}, domainrepo.ErrNotFound
	}
	return *lead, nil
}

func (m *memLeadRepo) ScanWithPhoneKey(ctx context.Context) (domainrepo.LeadCursor, error) {
	var leads []entities.Lead
	for _, key := range m.order {
		if key != "" {
			leads = append(leads, *m.leads[key])
		}
	}
	return &sliceCursor{leads: leads}, nil
}

func (m *memLeadRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	if err := m.updateErrs[id]; err != nil {
		return err
	}
	m.updates = append(m.updates, id)
	for _, lead := range m.leads {
		if lead.ID == id {
			if summary, ok := fields["summary"].(string); ok {
				lead.Summary = summary
			}
			if at, ok := fields["last_summary_at"].(time.Time); ok {
				lead.LastSummaryAt = &at
			}
			return nil
		}
	}
	return domainrepo.ErrNotFound
}

type sliceCursor struct {
	leads []entities.Lead
	idx   int
}

func (c *sliceCursor) Next(ctx context.Context) bool {
	if c.idx >= len(c.leads) {
		return false
	}
	c.idx++
	return true
}

func (c *sliceCursor) Decode(lead *entities.Lead) error {
	*lead = c.leads[c.idx-1]
	return nil
}

func (c *sliceCursor) Err() error                      { return nil }
func (c *sliceCursor) Close(ctx context.Context) error { return nil }

// fakeConversations scripts per-phone locate and fetch outcomes.
type fakeConversations struct {
	segments    map[string]*dto.ConversationItem
	transcripts map[string]string
	locateCalls int
}

func (f *fakeConversations) Locate(ctx context.Context, phoneKey string) *dto.ConversationItem {
	f.locateCalls++
	return f.segments[phoneKey]
}

func (f *fakeConversations) FetchTranscript(ctx context.Context, segment *dto.ConversationItem) (string, bool) {
	transcript, ok := f.transcripts[segment.SegmentCode]
	return transcript, ok
}

type fakeSummaries struct {
	calls int
}

func (f *fakeSummaries) Summarize(ctx context.Context, payload string) string {
	f.calls++
	return "summary of: " + payload
}

func seedLead(t *testing.T, repo *memLeadRepo, phoneKey string) entities.Lead {
	t.Helper()
	_, err := repo.Upsert(context.Background(), phoneKey, map[string]any{"source": entities.DefaultSource})
	require.NoError(t, err)
	lead, err := repo.FindByPhoneKey(context.Background(), phoneKey)
	require.NoError(t, err)
	return lead
}

func TestRunBatch_OneBadLeadDoesNotAbortTheRest(t *testing.T) {
	t.Parallel()

	repo := newMemLeadRepo()
	seedLead(t, repo, "5255111")
	seedLead(t, repo, "5255222")
	seedLead(t, repo, "5255333")

	// Lead 2's conversation lookup fails upstream; Locate absorbs the
	// transport error and reports absence.
	conversations := &fakeConversations{
		segments: map[string]*dto.ConversationItem{
			"5255111": {UserCode: "wa_5255111", SegmentCode: "S1"},
			"5255333": {UserCode: "wa_5255333", SegmentCode: "S3"},
		},
		transcripts: map[string]string{
			"S1": "user: hi\n",
			"S3": "user: bye\n",
		},
	}
	summaries := &fakeSummaries{}

	bs := NewBatchSummaryService(testLogger(t), repo, conversations, summaries)
	report, err := bs.RunBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.NotEmpty(t, report.Message)

	lead1, _ := repo.FindByPhoneKey(context.Background(), "5255111")
	lead2, _ := repo.FindByPhoneKey(context.Background(), "5255222")
	lead3, _ := repo.FindByPhoneKey(context.Background(), "5255333")
	assert.Equal(t, "summary of: user: hi\n", lead1.Summary)
	assert.Empty(t, lead2.Summary)
	assert.Nil(t, lead2.LastSummaryAt)
	assert.Equal(t, "summary of: user: bye\n", lead3.Summary)
	assert.NotNil(t, lead3.LastSummaryAt)
}

func TestRunBatch_EmptyStoreMakesNoRemoteCalls(t *testing.T) {
	t.Parallel()

	conversations := &fakeConversations{}
	summaries := &fakeSummaries{}

	bs := NewBatchSummaryService(testLogger(t), newMemLeadRepo(), conversations, summaries)
	report, err := bs.RunBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, conversations.locateCalls)
	assert.Equal(t, 0, summaries.calls)
}

func TestRunBatch_PersistFailureCountsAsSkipped(t *testing.T) {
	t.Parallel()

	repo := newMemLeadRepo()
	good := seedLead(t, repo, "5255111")
	bad := seedLead(t, repo, "5255222")
	repo.updateErrs[bad.ID] = eris.New("write concern failed")

	conversations := &fakeConversations{
		segments: map[string]*dto.ConversationItem{
			"5255111": {SegmentCode: "S1"},
			"5255222": {SegmentCode: "S2"},
		},
		transcripts: map[string]string{"S1": "a", "S2": "b"},
	}

	bs := NewBatchSummaryService(testLogger(t), repo, conversations, &fakeSummaries{})
	report, err := bs.RunBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []primitive.ObjectID{good.ID}, repo.updates)
}

func TestRunBatch_TranscriptFailureSkipsSummarizer(t *testing.T) {
	t.Parallel()

	repo := newMemLeadRepo()
	seedLead(t, repo, "5255111")

	// Segment located, but detail retrieval yields nothing.
	conversations := &fakeConversations{
		segments: map[string]*dto.ConversationItem{
			"5255111": {SegmentCode: "S1"},
		},
	}
	summaries := &fakeSummaries{}

	bs := NewBatchSummaryService(testLogger(t), repo, conversations, summaries)
	report, err := bs.RunBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, summaries.calls)
}

func TestRunBatch_RejectsOverlappingRuns(t *testing.T) {
	t.Parallel()

	bs := NewBatchSummaryService(testLogger(t), newMemLeadRepo(), &fakeConversations{}, &fakeSummaries{})
	bs.running.Store(true)

	_, err := bs.RunBatch(context.Background())
	assert.ErrorIs(t, err, ErrBatchAlreadyRunning)
}
