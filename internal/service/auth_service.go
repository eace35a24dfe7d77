package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/repo/postgres"
	"github.com/entryline/visitdesk/pkg/auth"
	"github.com/entryline/visitdesk/pkg/config"
	"github.com/entryline/visitdesk/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, req *domain.LoginReq) (*domain.LoginRes, error)
	CreateUser(ctx context.Context, req *domain.CreateUserReq) (*domain.User, error)
	// EnsureAdmin creates the bootstrap admin account on first start.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo postgres.UserRepository
	cfg      config.AuthConfig
}

func NewAuthService(userRepo postgres.UserRepository, cfg config.AuthConfig) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req *domain.LoginReq) (*domain.LoginRes, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, validationErr("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, unauthorizedErr("Invalid email or password")
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, unauthorizedErr("Invalid email or password")
	}

	token, err := auth.NewSessionToken(user.ID, user.Email, user.Role, s.cfg.JWTSecret, s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	return &domain.LoginRes{
		Token:     token,
		ExpiresIn: int64(s.cfg.SessionTTL.Seconds()),
		User:      user,
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, req *domain.CreateUserReq) (*domain.User, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, validationErr("Email and name are required")
	}
	if len(req.Password) < 8 {
		return nil, validationErr("Password must be at least 8 characters")
	}
	if req.Role != auth.RoleAdmin && req.Role != auth.RoleFrontDesk {
		return nil, validationErr("Role must be admin or frontdesk")
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, conflictErr("Email already in use")
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Email, req.Name, hash, req.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	if _, err := s.userRepo.Create(ctx, email, "Administrator", hash, auth.RoleAdmin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	logger.Info("Bootstrap admin created", "email", email)
	return nil
}
