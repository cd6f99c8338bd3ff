package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"viralcopy/backend/internal/features/feedback/domain"
	"viralcopy/backend/internal/features/feedback/infrastructure"
	"viralcopy/backend/internal/platform/logger"
)

type FeedbackService interface {
	Submit(ctx context.Context, userID string, generateID uuid.UUID, versionID string, rating int, comment string) (*domain.Feedback, error)
	ListByGeneration(ctx context.Context, generateID uuid.UUID) ([]*domain.Feedback, error)
}

type feedbackService struct {
	repo infrastructure.FeedbackRepo
	log  *logger.Logger
}

func NewFeedbackService(repo infrastructure.FeedbackRepo, log *logger.Logger) FeedbackService {
	return &feedbackService{
		repo: repo,
		log:  log.With("service", "FeedbackService"),
	}
}

func (s *feedbackService) Submit(ctx context.Context, userID string, generateID uuid.UUID, versionID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	feedback := &domain.Feedback{
		FeedbackID: uuid.New(),
		UserID:     userID,
		GenerateID: generateID,
		VersionID:  versionID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.log.Info("feedback submitted",
		"feedback_id", feedback.FeedbackID,
		"generate_id", generateID,
		"rating", rating,
	)
	return feedback, nil
}

func (s *feedbackService) ListByGeneration(ctx context.Context, generateID uuid.UUID) ([]*domain.Feedback, error) {
	return s.repo.ListByGeneration(ctx, generateID)
}
