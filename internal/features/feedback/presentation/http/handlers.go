package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"viralcopy/backend/internal/features/feedback/application"
	"viralcopy/backend/internal/platform/logger"
)

type FeedbackHandler struct {
	feedbackService application.FeedbackService
	log             *logger.Logger
}

func NewFeedbackHandler(feedbackService application.FeedbackService, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		log:             log.With("handler", "FeedbackHandler"),
	}
}

type submitFeedbackRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	GenerateID string `json:"generate_id" binding:"required"`
	VersionID  string `json:"version_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

// SubmitHandler records a rating for one generated version.
func (h *FeedbackHandler) SubmitHandler(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	generateID, err := uuid.Parse(req.GenerateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid generate_id: " + err.Error()})
		return
	}

	feedback, err := h.feedbackService.Submit(c.Request.Context(), req.UserID, generateID, req.VersionID, req.Rating, req.Comment)
	if err != nil {
		h.log.Error("feedback submit failed", "generate_id", req.GenerateID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// ListHandler returns all feedback recorded for one generation.
func (h *FeedbackHandler) ListHandler(c *gin.Context) {
	generateID, err := uuid.Parse(c.Param("generateId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid generate_id: " + err.Error()})
		return
	}

	feedbacks, err := h.feedbackService.ListByGeneration(c.Request.Context(), generateID)
	if err != nil {
		h.log.Error("feedback list failed", "generate_id", generateID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks, "count": len(feedbacks)})
}
