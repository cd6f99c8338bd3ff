package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"viralcopy/backend/internal/features/generation/application"
	"viralcopy/backend/internal/features/generation/domain"
	"viralcopy/backend/internal/platform/logger"
	"viralcopy/backend/internal/prompts"
)

// ContentHandler exposes the generation pipeline over HTTP.
type ContentHandler struct {
	contentService application.ContentService
	log            *logger.Logger
}

func NewContentHandler(contentService application.ContentService, log *logger.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		log:            log.With("handler", "ContentHandler"),
	}
}

type generateRequest struct {
	UserID    string             `json:"user_id" binding:"required"`
	Product   domain.ProductInfo `json:"product_info" binding:"required"`
	Community string             `json:"community" binding:"required"`
	Emphasis  domain.Emphasis    `json:"emphasis"`
	BestCase  string             `json:"best_case"`
}

type regenerateRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	GenerateID string `json:"generate_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type copyActionRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	GenerateID string `json:"generate_id" binding:"required"`
	VersionID  string `json:"version_id" binding:"required"`
}

// GenerateHandler handles the request to generate copy for a community.
func (h *ContentHandler) GenerateHandler(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	outcome, err := h.contentService.Generate(c.Request.Context(), req.UserID, domain.GenerationRequest{
		Product:   req.Product,
		Community: req.Community,
		Emphasis:  req.Emphasis,
		BestCase:  req.BestCase,
	})
	if err != nil {
		if errors.Is(err, prompts.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown community: " + req.Community})
			return
		}
		h.log.Error("generate request failed", "community", req.Community, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// RegenerateHandler handles the request to regenerate an earlier result with
// a staff-supplied reason.
func (h *ContentHandler) RegenerateHandler(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	generateID, err := uuid.Parse(req.GenerateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid generate_id: " + err.Error()})
		return
	}

	outcome, err := h.contentService.Regenerate(c.Request.Context(), req.UserID, generateID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Generation not found: " + req.GenerateID})
		case errors.Is(err, prompts.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No regeneration template for this community"})
		default:
			h.log.Error("regenerate request failed", "generate_id", req.GenerateID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate content: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// HistoryHandler returns a user's recent generations, newest first.
func (h *ContentHandler) HistoryHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	generations, err := h.contentService.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.log.Error("history request failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generations": generations, "count": len(generations)})
}

// CopyActionHandler records that a staff member copied one generated version.
func (h *ContentHandler) CopyActionHandler(c *gin.Context) {
	var req copyActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	generateID, err := uuid.Parse(req.GenerateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid generate_id: " + err.Error()})
		return
	}

	actionID, err := h.contentService.RecordCopyAction(c.Request.Context(), req.UserID, generateID, req.VersionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Generation not found: " + req.GenerateID})
			return
		}
		h.log.Error("copy action failed", "generate_id", req.GenerateID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record copy action: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"action_id": actionID})
}

// CommunitiesHandler lists the communities that have a prompt template loaded.
func (h *ContentHandler) CommunitiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"communities": h.contentService.Communities()})
}
