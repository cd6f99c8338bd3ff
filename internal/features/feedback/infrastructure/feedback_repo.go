package infrastructure

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"viralcopy/backend/internal/features/feedback/domain"
	"viralcopy/backend/internal/platform/logger"
)

type FeedbackRepo interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListByGeneration(ctx context.Context, generateID uuid.UUID) ([]*domain.Feedback, error)
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return &feedbackRepo{db: db, log: baseLog.With("repo", "FeedbackRepo")}
}

func (r *feedbackRepo) Create(ctx context.Context, feedback *domain.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepo) ListByGeneration(ctx context.Context, generateID uuid.UUID) ([]*domain.Feedback, error) {
	var results []*domain.Feedback
	if err := r.db.WithContext(ctx).
		Where("generate_id = ?", generateID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
