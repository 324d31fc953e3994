package service

import (
	"context"
	"time"

	"mepquote/internal/logger"
	"mepquote/internal/model"
	"mepquote/internal/repository"
)

type authService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authService) GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry interface{}) (*model.User, error) {
	existingUser, err := s.userRepo.FindByGoogleID(ctx, googleID)
	if err != nil {
		// User doesn't exist, create new one
		newUser := model.NewUser(googleID, email, name, accessToken, refreshToken, parseExpiry(tokenExpiry))
		if err := s.userRepo.Create(ctx, newUser); err != nil {
			s.logger.Error("Failed to create user:", err)
			return nil, err
		}
		s.logger.Info("Created new user:", newUser.ID)
		return newUser, nil
	}

	// User exists, refresh the stored tokens if new ones were issued
	if accessToken != "" || refreshToken != "" {
		existingUser.AccessToken = accessToken
		existingUser.RefreshToken = refreshToken
		if expiry := parseExpiry(tokenExpiry); !expiry.IsZero() {
			existingUser.TokenExpiry = expiry
		}
		if err := s.userRepo.Update(ctx, existingUser); err != nil {
			s.logger.Error("Failed to update user:", err)
			return nil, err
		}
		s.logger.Info("Updated existing user:", existingUser.ID)
	}

	return existingUser, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// parseExpiry accepts either a time.Time or an RFC3339 string, since OAuth
// providers report the token expiry in both shapes.
func parseExpiry(tokenExpiry interface{}) time.Time {
	switch exp := tokenExpiry.(type) {
	case time.Time:
		return exp
	case string:
		if parsed, err := time.Parse(time.RFC3339, exp); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
