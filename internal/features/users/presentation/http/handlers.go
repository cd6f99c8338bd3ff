package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"viralcopy/backend/internal/features/users/application"
	"viralcopy/backend/internal/platform/logger"
)

type UserHandler struct {
	userService application.UserService
	log         *logger.Logger
}

func NewUserHandler(userService application.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log.With("handler", "UserHandler"),
	}
}

type loginRequest struct {
	TeamName string `json:"team_name" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
}

// LoginHandler creates a session id for a team member.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.TeamName, req.UserName)
	if err != nil {
		h.log.Error("login failed", "team", req.TeamName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
