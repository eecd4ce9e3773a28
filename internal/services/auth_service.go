package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/auth"
	"github.com/engagehq/engage-backend/internal/config"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"github.com/engagehq/engage-backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration and login
type AuthService struct {
	userRepo repositories.UserRepository
	jwtCfg   *config.JWTConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

// Register creates a new user account with the default user role
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("register %s: %w", req.Email, apperrors.ErrEmailInUse)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.WithFields(logrus.Fields{"userId": user.ID.Hex()}).Info("user registered")
	return user, nil
}

// Login verifies credentials and returns a signed session token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user, s.jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &models.LoginResponse{Token: token, User: user}, nil
}
