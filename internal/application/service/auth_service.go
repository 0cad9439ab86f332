package service

import (
	"context"
	"errors"
	"strings"

	"github.com/elitemotors/detailing-api/internal/config"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/elitemotors/detailing-api/pkg/utils"
	"github.com/google/uuid"
)

// RoleAdmin is granted to the back-office operator
const RoleAdmin = "admin"

// Admin is the configured back-office operator
type Admin struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Roles []string  `json:"roles"`
}

// AuthService handles authentication-related operations
type AuthService struct {
	admin        Admin
	passwordHash string
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service for the configured admin.
// The password is hashed once so it is never compared in plain text.
func NewAuthService(cfg config.AdminConfig, jwtManager *utils.JWTManager) (*AuthService, error) {
	if cfg.Email == "" || cfg.Password == "" {
		return nil, errors.New("admin email and password must be configured")
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	return &AuthService{
		admin: Admin{
			ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)),
			Name:  cfg.Name,
			Email: email,
			Roles: []string{RoleAdmin},
		},
		passwordHash: hash,
		jwtManager:   jwtManager,
	}, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *Admin
	AccessToken string
	ExpiresIn   int64
}

// Login authenticates the admin and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if strings.ToLower(strings.TrimSpace(input.Email)) != s.admin.Email {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, s.passwordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(s.admin.ID, s.admin.Email, s.admin.Roles)
	if err != nil {
		return nil, err
	}

	admin := s.admin
	return &LoginOutput{
		User:        &admin,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// GetCurrentUser returns the admin behind a validated token
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*Admin, error) {
	if userID != s.admin.ID {
		return nil, apperror.ErrUnauthorized
	}
	admin := s.admin
	return &admin, nil
}
