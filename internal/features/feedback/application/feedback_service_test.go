package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viralcopy/backend/internal/features/feedback/domain"
	"viralcopy/backend/internal/platform/logger"
)

type memFeedbackRepo struct {
	feedbacks []*domain.Feedback
}

func (r *memFeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	r.feedbacks = append(r.feedbacks, feedback)
	return nil
}

func (r *memFeedbackRepo) ListByGeneration(_ context.Context, generateID uuid.UUID) ([]*domain.Feedback, error) {
	var results []*domain.Feedback
	for _, f := range r.feedbacks {
		if f.GenerateID == generateID {
			results = append(results, f)
		}
	}
	return results, nil
}

func TestSubmitFeedback(t *testing.T) {
	repo := &memFeedbackRepo{}
	svc := NewFeedbackService(repo, logger.NewNop())
	generateID := uuid.New()

	feedback, err := svc.Submit(context.Background(), "user-1", generateID, "2", 4, "후기형이 제일 자연스러움")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, feedback.FeedbackID)
	assert.Equal(t, 4, feedback.Rating)
	require.Len(t, repo.feedbacks, 1)

	listed, err := svc.ListByGeneration(context.Background(), generateID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, feedback.FeedbackID, listed[0].FeedbackID)
}

func TestSubmitFeedbackRejectsRatingOutOfRange(t *testing.T) {
	svc := NewFeedbackService(&memFeedbackRepo{}, logger.NewNop())

	_, err := svc.Submit(context.Background(), "user-1", uuid.New(), "1", 0, "")
	require.Error(t, err)
	_, err = svc.Submit(context.Background(), "user-1", uuid.New(), "1", 6, "")
	require.Error(t, err)
}
