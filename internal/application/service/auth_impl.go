package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pillulu/internal/application/dto"
	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/repository"
	"pillulu/internal/pkg/auth"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"gorm.io/gorm"
)

const minPasswordLen = 6

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.Tokens
	log      logger.Logger
}

// NewAuthService creates a new instance of AuthService implementation.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.Tokens, log logger.Logger) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, log: log}
}

// NormalizeEmail lowercases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Register creates a user with a bcrypt password hash.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || len(email) > 255 || req.Password == "" {
		return dto.AuthResponse{}, fmt.Errorf("%w: email and password are required", appErrors.ErrInvalidInput)
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return dto.AuthResponse{}, appErrors.ErrEmailTaken
	}
	if !isNotFound(err) {
		s.log.Error("Failed to look up email during registration", err)
		return dto.AuthResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if len(req.Password) < minPasswordLen {
		return dto.AuthResponse{}, appErrors.ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", err)
		return dto.AuthResponse{}, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}
	user := &entity.User{Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", err)
		return dto.AuthResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Registered user %d", user.ID))
	return s.issue(user)
}

// Login verifies the password against the stored hash.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return dto.AuthResponse{}, appErrors.ErrInvalidCredentials
		}
		s.log.Error("Failed to look up user during login", err)
		return dto.AuthResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return dto.AuthResponse{}, appErrors.ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *authService) issue(user *entity.User) (dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to issue token for user %d", user.ID), err)
		return dto.AuthResponse{}, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}
	return dto.AuthResponse{Token: token, Email: user.Email, UserID: user.ID}, nil
}

// Authenticate returns ErrInvalidToken or ErrUserNotFound on failure.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrUserNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to load user %d for token", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return user, nil
}

// Me never fails; any problem reads as signed out.
func (s *authService) Me(ctx context.Context, token string) dto.MeResponse {
	if token == "" {
		return dto.MeResponse{LoggedIn: false}
	}
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return dto.MeResponse{LoggedIn: false}
	}
	return dto.MeResponse{LoggedIn: true, Email: user.Email, UserID: user.ID}
}
