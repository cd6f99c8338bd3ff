package application

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"viralcopy/backend/internal/features/generation/domain"
	"viralcopy/backend/internal/platform/logger"
	"viralcopy/backend/internal/prompts"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubGenerator) Model() string { return "test-model" }

type memRepo struct {
	generations []*domain.Generation
	logs        []*domain.RegenerateLog
	actions     []*domain.CopyAction
	lastLimit   int
}

func (r *memRepo) Create(_ context.Context, g *domain.Generation) error {
	r.generations = append(r.generations, g)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Generation, error) {
	for _, g := range r.generations {
		if g.GenerateID == id {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.Generation, error) {
	r.lastLimit = limit
	var results []*domain.Generation
	for _, g := range r.generations {
		if g.UserID == userID {
			results = append(results, g)
		}
	}
	return results, nil
}

func (r *memRepo) CreateRegenerateLog(_ context.Context, l *domain.RegenerateLog) error {
	r.logs = append(r.logs, l)
	return nil
}

func (r *memRepo) CreateCopyAction(_ context.Context, a *domain.CopyAction) error {
	r.actions = append(r.actions, a)
	return nil
}

func testRegistry(t *testing.T) *prompts.Registry {
	t.Helper()
	r, err := prompts.NewRegistry([]*prompts.Template{
		{Key: "ppomppu", SystemPrompt: "상품명: {productName} / 행사: {event}"},
		{Key: "regenerate_ppomppu", SystemPrompt: "사유: {regenerateReason}\n이전: {previousContents}\n상품명: {productName}"},
	})
	require.NoError(t, err)
	return r
}

func newTestService(t *testing.T, gen *stubGenerator, repo *memRepo) ContentService {
	t.Helper()
	return NewContentService(testRegistry(t), gen, NewNormalizer(nil), repo, logger.NewNop())
}

func baseRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Product: domain.ProductInfo{
			ProductName:      "유기농 기저귀",
			Price:            "29,900원",
			ProductAttribute: "대형 84매",
		},
		Community: "ppomppu",
		Emphasis:  domain.Emphasis{Event: "1+1"},
	}
}

func TestGenerateSuccess(t *testing.T) {
	gen := &stubGenerator{response: `{"information": {"content": "정보 본문"}, "review": {"content": "후기 본문"}}`}
	repo := &memRepo{}
	svc := newTestService(t, gen, repo)

	outcome, err := svc.Generate(context.Background(), "user-1", baseRequest())
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, gen.response, outcome.Content)
	assert.Equal(t, "test-model", outcome.Model)
	require.Len(t, outcome.GeneratedContents, 2)
	assert.Equal(t, "정보 전달형", outcome.GeneratedContents[0].Tone)
	assert.Equal(t, "후기형", outcome.GeneratedContents[1].Tone)

	// The formatted prompt carried the request values.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "유기농 기저귀")
	assert.Contains(t, gen.prompts[0], "1+1")

	// The run was persisted with the normalized records.
	require.Len(t, repo.generations, 1)
	stored := repo.generations[0]
	assert.Equal(t, outcome.GenerateID, stored.GenerateID)
	assert.Equal(t, "user-1", stored.UserID)
	var records []domain.GeneratedRecord
	require.NoError(t, json.Unmarshal(stored.GeneratedContents, &records))
	assert.Equal(t, outcome.GeneratedContents, records)
}

func TestGenerateBackendFailureReturnsSentinel(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("quota exceeded")}
	repo := &memRepo{}
	svc := newTestService(t, gen, repo)

	outcome, err := svc.Generate(context.Background(), "user-1", baseRequest())
	require.NoError(t, err)

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "quota exceeded")
	require.Len(t, outcome.GeneratedContents, 1)
	assert.Equal(t, 1, outcome.GeneratedContents[0].ID)
	assert.Equal(t, domain.FailureTone, outcome.GeneratedContents[0].Tone)
	assert.Contains(t, outcome.GeneratedContents[0].Text, "quota exceeded")

	// Failures are persisted too, with the sentinel record.
	require.Len(t, repo.generations, 1)
}

func TestGenerateUnknownCommunity(t *testing.T) {
	svc := newTestService(t, &stubGenerator{}, &memRepo{})

	req := baseRequest()
	req.Community = "dcinside"
	_, err := svc.Generate(context.Background(), "user-1", req)
	require.ErrorIs(t, err, prompts.ErrTemplateNotFound)
}

func TestRegenerate(t *testing.T) {
	gen := &stubGenerator{response: `{"information": {"content": "처음 본문"}}`}
	repo := &memRepo{}
	svc := newTestService(t, gen, repo)

	first, err := svc.Generate(context.Background(), "user-1", baseRequest())
	require.NoError(t, err)

	gen.response = `{"review": {"content": "새 본문"}}`
	second, err := svc.Regenerate(context.Background(), "user-1", first.GenerateID, "너무 광고 같아요")
	require.NoError(t, err)

	assert.True(t, second.Success)
	require.Len(t, second.GeneratedContents, 1)
	assert.Equal(t, "후기형", second.GeneratedContents[0].Tone)

	// The regeneration prompt carried the reason and the previous records.
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[1], "너무 광고 같아요")
	assert.Contains(t, gen.prompts[1], "처음 본문")
	assert.Contains(t, gen.prompts[1], "유기농 기저귀")

	// A second generation row plus one regenerate log against the original.
	require.Len(t, repo.generations, 2)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, first.GenerateID, repo.logs[0].GenerateID)
	assert.Equal(t, "너무 광고 같아요", repo.logs[0].ReasonText)
}

func TestRegenerateMissingGeneration(t *testing.T) {
	svc := newTestService(t, &stubGenerator{}, &memRepo{})

	_, err := svc.Regenerate(context.Background(), "user-1", uuid.New(), "사유")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegenerateWithoutTemplate(t *testing.T) {
	registry, err := prompts.NewRegistry([]*prompts.Template{
		{Key: "ppomppu", SystemPrompt: "상품명: {productName}"},
	})
	require.NoError(t, err)

	gen := &stubGenerator{response: "본문"}
	repo := &memRepo{}
	svc := NewContentService(registry, gen, NewNormalizer(nil), repo, logger.NewNop())

	first, err := svc.Generate(context.Background(), "user-1", baseRequest())
	require.NoError(t, err)

	_, err = svc.Regenerate(context.Background(), "user-1", first.GenerateID, "사유")
	require.ErrorIs(t, err, prompts.ErrTemplateNotFound)
}

func TestRecordCopyAction(t *testing.T) {
	gen := &stubGenerator{response: "본문"}
	repo := &memRepo{}
	svc := newTestService(t, gen, repo)

	first, err := svc.Generate(context.Background(), "user-1", baseRequest())
	require.NoError(t, err)

	actionID, err := svc.RecordCopyAction(context.Background(), "user-1", first.GenerateID, "1")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, actionID)
	require.Len(t, repo.actions, 1)
	assert.Equal(t, "copy", repo.actions[0].ActionType)

	_, err = svc.RecordCopyAction(context.Background(), "user-1", uuid.New(), "1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHistoryDefaultLimit(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(t, &stubGenerator{response: "본문"}, repo)

	_, err := svc.History(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)
}
