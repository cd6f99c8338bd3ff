package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"viralcopy/backend/internal/features/generation/domain"
	"viralcopy/backend/internal/features/generation/infrastructure"
	"viralcopy/backend/internal/platform/logger"
	"viralcopy/backend/internal/prompts"
)

// ContentService runs the full generation pipeline: resolve the community's
// prompt template, format the instruction, call the generation backend, and
// normalize whatever comes back. Backend failures are reported inside the
// Result with Success=false and a sentinel record; an error return means the
// request itself was bad (unknown community) or persistence failed.
type ContentService interface {
	Generate(ctx context.Context, userID string, req domain.GenerationRequest) (*domain.Outcome, error)
	Regenerate(ctx context.Context, userID string, generateID uuid.UUID, reason string) (*domain.Outcome, error)
	History(ctx context.Context, userID string, limit int) ([]*domain.Generation, error)
	RecordCopyAction(ctx context.Context, userID string, generateID uuid.UUID, versionID string) (uuid.UUID, error)
	Communities() []string
}

type contentService struct {
	registry   *prompts.Registry
	generator  infrastructure.TextGenerator
	normalizer *Normalizer
	repo       infrastructure.GenerationRepo
	log        *logger.Logger
}

func NewContentService(
	registry *prompts.Registry,
	generator infrastructure.TextGenerator,
	normalizer *Normalizer,
	repo infrastructure.GenerationRepo,
	log *logger.Logger,
) ContentService {
	return &contentService{
		registry:   registry,
		generator:  generator,
		normalizer: normalizer,
		repo:       repo,
		log:        log.With("service", "ContentService"),
	}
}

// storedAttributes is the shape of the Attributes JSON column: everything
// about the run that is not product info or output.
type storedAttributes struct {
	Community string          `json:"community"`
	Emphasis  domain.Emphasis `json:"emphasis"`
	BestCase  string          `json:"best_case"`
}

func (s *contentService) Generate(ctx context.Context, userID string, req domain.GenerationRequest) (*domain.Outcome, error) {
	template, err := s.registry.Resolve(req.Community)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, userID, template, req, uuid.Nil)
}

// Regenerate reloads the original run, rebuilds the request with the staff
// reason and the previous result set attached, and runs it through the
// community's regenerate_* template. A community without a regeneration
// template is a terminal error, not a silent fallback to the base template.
func (s *contentService) Regenerate(ctx context.Context, userID string, generateID uuid.UUID, reason string) (*domain.Outcome, error) {
	original, err := s.repo.GetByID(ctx, generateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load generation %s: %w", generateID, err)
	}

	var product domain.ProductInfo
	if err := json.Unmarshal(original.ProductInfo, &product); err != nil {
		return nil, fmt.Errorf("stored product info is unreadable: %w", err)
	}
	var attrs storedAttributes
	if err := json.Unmarshal(original.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("stored attributes are unreadable: %w", err)
	}
	var previous []domain.GeneratedRecord
	if err := json.Unmarshal(original.GeneratedContents, &previous); err != nil {
		return nil, fmt.Errorf("stored contents are unreadable: %w", err)
	}

	template, err := s.registry.Resolve(prompts.RegeneratePrefix + attrs.Community)
	if err != nil {
		return nil, err
	}

	req := domain.GenerationRequest{
		Product:          product,
		Community:        attrs.Community,
		Emphasis:         attrs.Emphasis,
		BestCase:         attrs.BestCase,
		Reason:           reason,
		PreviousContents: previous,
	}
	return s.run(ctx, userID, template, req, generateID)
}

// run executes one generation against a resolved template and persists the
// outcome. parentID is non-nil on the regeneration path and adds a
// regenerate log entry referencing the original run.
func (s *contentService) run(ctx context.Context, userID string, template *prompts.Template, req domain.GenerationRequest, parentID uuid.UUID) (*domain.Outcome, error) {
	instruction, err := prompts.Format(template, toFormatRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to format prompt %s: %w", template.Key, err)
	}

	var result domain.Result
	raw, err := s.generator.Generate(ctx, instruction)
	if err != nil {
		s.log.Error("content generation failed",
			"community", req.Community,
			"user_id", userID,
			"error", err,
		)
		result = domain.Result{
			Success: false,
			Model:   s.generator.Model(),
			Error:   err.Error(),
			GeneratedContents: []domain.GeneratedRecord{{
				ID:   1,
				Tone: domain.FailureTone,
				Text: "콘텐츠 생성 실패: " + err.Error(),
			}},
		}
	} else {
		result = domain.Result{
			Success:           true,
			Content:           raw,
			Model:             s.generator.Model(),
			GeneratedContents: s.normalizer.Normalize(raw),
		}
	}

	generation, err := buildGenerationRow(userID, req, result)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, generation); err != nil {
		return nil, fmt.Errorf("failed to save generation: %w", err)
	}

	if parentID != uuid.Nil {
		if err := s.repo.CreateRegenerateLog(ctx, &domain.RegenerateLog{
			RegenerateID: uuid.New(),
			UserID:       userID,
			GenerateID:   parentID,
			ReasonText:   req.Reason,
			NewContents:  generation.GeneratedContents,
			CreatedAt:    time.Now(),
		}); err != nil {
			return nil, fmt.Errorf("failed to save regenerate log: %w", err)
		}
	}

	s.log.Info("content generated",
		"generate_id", generation.GenerateID,
		"community", req.Community,
		"user_id", userID,
		"success", result.Success,
		"records", len(result.GeneratedContents),
	)
	return &domain.Outcome{GenerateID: generation.GenerateID, Result: result}, nil
}

func (s *contentService) History(ctx context.Context, userID string, limit int) ([]*domain.Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *contentService) RecordCopyAction(ctx context.Context, userID string, generateID uuid.UUID, versionID string) (uuid.UUID, error) {
	if _, err := s.repo.GetByID(ctx, generateID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to load generation %s: %w", generateID, err)
	}
	action := &domain.CopyAction{
		ActionID:   uuid.New(),
		UserID:     userID,
		GenerateID: generateID,
		VersionID:  versionID,
		ActionType: "copy",
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateCopyAction(ctx, action); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save copy action: %w", err)
	}
	return action.ActionID, nil
}

func (s *contentService) Communities() []string {
	return s.registry.Communities()
}

func toFormatRequest(req domain.GenerationRequest) prompts.FormatRequest {
	previous := make([]prompts.PreviousContent, 0, len(req.PreviousContents))
	for _, record := range req.PreviousContents {
		previous = append(previous, prompts.PreviousContent{
			ID:   record.ID,
			Tone: record.Tone,
			Text: record.Text,
		})
	}
	return prompts.FormatRequest{
		ProductName:      req.Product.ProductName,
		Price:            req.Product.Price,
		ProductAttribute: req.Product.ProductAttribute,
		Event:            req.Emphasis.Event,
		Card:             req.Emphasis.Card,
		Coupon:           req.Emphasis.Coupon,
		Keyword:          req.Emphasis.Keyword,
		Etc:              req.Emphasis.Etc,
		BestCase:         req.BestCase,
		RegenerateReason: req.Reason,
		PreviousContents: previous,
	}
}

func buildGenerationRow(userID string, req domain.GenerationRequest, result domain.Result) (*domain.Generation, error) {
	productJSON, err := json.Marshal(req.Product)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product info: %w", err)
	}
	attrsJSON, err := json.Marshal(storedAttributes{
		Community: req.Community,
		Emphasis:  req.Emphasis,
		BestCase:  req.BestCase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}
	contentsJSON, err := json.Marshal(result.GeneratedContents)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generated contents: %w", err)
	}
	return &domain.Generation{
		GenerateID:        uuid.New(),
		UserID:            userID,
		ProductInfo:       datatypes.JSON(productJSON),
		Attributes:        datatypes.JSON(attrsJSON),
		GeneratedContents: datatypes.JSON(contentsJSON),
		CreatedAt:         time.Now(),
	}, nil
}
