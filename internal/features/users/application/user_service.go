package application

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"viralcopy/backend/internal/features/users/domain"
	"viralcopy/backend/internal/features/users/infrastructure"
	"viralcopy/backend/internal/platform/logger"
)

// UserService mints login sessions. There are no credentials; the id is
// derived from team, name and login time so every login is a fresh session
// that still reads as "who" in the logged data.
type UserService interface {
	Login(ctx context.Context, teamName, userName string) (*domain.User, error)
}

type userService struct {
	repo infrastructure.UserRepo
	log  *logger.Logger
	now  func() time.Time
}

func NewUserService(repo infrastructure.UserRepo, log *logger.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With("service", "UserService"),
		now:  time.Now,
	}
}

func (s *userService) Login(ctx context.Context, teamName, userName string) (*domain.User, error) {
	teamName = strings.TrimSpace(teamName)
	userName = strings.TrimSpace(userName)
	if teamName == "" || userName == "" {
		return nil, fmt.Errorf("team name and user name are required")
	}

	loginAt := s.now()
	user := &domain.User{
		UserID:    deriveUserID(teamName, userName, loginAt),
		TeamName:  teamName,
		UserName:  userName,
		CreatedAt: loginAt,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.log.Info("user logged in", "user_id", user.UserID, "team", teamName)
	return user, nil
}

// deriveUserID hashes team, name and the login timestamp and keeps the first
// 12 hex characters. The timestamp makes ids unique per login while keeping
// them short enough to eyeball in the data.
func deriveUserID(teamName, userName string, at time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s_%d", teamName, userName, at.Unix())))
	return hex.EncodeToString(sum[:])[:12]
}
