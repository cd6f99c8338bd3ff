package infrastructure

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"viralcopy/backend/internal/features/generation/domain"
	"viralcopy/backend/internal/platform/logger"
)

// GenerationRepo persists generation runs and their follow-ups.
type GenerationRepo interface {
	Create(ctx context.Context, generation *domain.Generation) error
	GetByID(ctx context.Context, generateID uuid.UUID) (*domain.Generation, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Generation, error)
	CreateRegenerateLog(ctx context.Context, log *domain.RegenerateLog) error
	CreateCopyAction(ctx context.Context, action *domain.CopyAction) error
}

type generationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenerationRepo(db *gorm.DB, baseLog *logger.Logger) GenerationRepo {
	return &generationRepo{db: db, log: baseLog.With("repo", "GenerationRepo")}
}

func (r *generationRepo) Create(ctx context.Context, generation *domain.Generation) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

func (r *generationRepo) GetByID(ctx context.Context, generateID uuid.UUID) (*domain.Generation, error) {
	var result domain.Generation
	if err := r.db.WithContext(ctx).
		Where("generate_id = ?", generateID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *generationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Generation, error) {
	var results []*domain.Generation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *generationRepo) CreateRegenerateLog(ctx context.Context, log *domain.RegenerateLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *generationRepo) CreateCopyAction(ctx context.Context, action *domain.CopyAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}
