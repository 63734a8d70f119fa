package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/raffleworks/sorteo-backend/internal/config"
	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"github.com/raffleworks/sorteo-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles admin authentication
type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{adminRepo: adminRepo, cfg: cfg}
}

// Login verifies the admin credentials and returns a signed JWT
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			slog.Warn("Login: unknown email", "email", email)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		slog.Warn("Login: wrong password", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Email, s.cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("Login: admin logged in", "email", email)
	return token, nil
}

// EnsureAdmin seeds the configured admin account on startup. It does nothing
// when the account already exists or no password is configured.
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		slog.Warn("EnsureAdmin: no admin credentials configured, skipping seed")
		return nil
	}

	_, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.AdminUser{
		Email:    email,
		Password: string(hash),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	slog.Info("EnsureAdmin: admin account seeded", "email", email)
	return nil
}
