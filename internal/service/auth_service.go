package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/info-mnml/Otokogi/internal/auth"
	"github.com/info-mnml/Otokogi/internal/models"
)

// Session is the result of a successful registration or login.
type Session struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// AuthService wraps the authenticator and token issuing for the API.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates an account and returns a signed session.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*Session, error) {
	if email == "" || displayName == "" {
		return nil, fmt.Errorf("%w: email and display name are required", ErrInvalidArgument)
	}
	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return nil, err
	}
	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return s.session(user)
}

// Login verifies credentials and returns a signed session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &Session{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}
