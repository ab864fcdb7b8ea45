package service

import (
	"context"
	"errors"

	"github.com/princesss/catalog-backend/config"
	"github.com/princesss/catalog-backend/pkg/logger"
	"github.com/princesss/catalog-backend/pkg/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthService issues admin tokens. The catalog has a single operator
// account configured through the environment; there is no user table.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type authService struct {
	cfg *config.AuthConfig
}

func NewAuthService(cfg *config.AuthConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email != s.cfg.AdminEmail {
		logger.Warn("Login failed: unknown email", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrInvalidCredentials
	}

	if !util.VerifyAdminPassword(s.cfg.AdminPasswordHash, input.Password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrInvalidCredentials
	}

	token, err := util.GenerateToken(input.Email, "admin", s.cfg.JWTSecret, s.cfg.TokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"email": input.Email,
	})
	return &LoginResult{Token: token, Email: input.Email, Role: "admin"}, nil
}
