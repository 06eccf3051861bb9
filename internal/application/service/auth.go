package service

import (
	"context"

	"pillulu/internal/application/dto"
	"pillulu/internal/domain/entity"
)

// AuthService defines the interface for account and token operations.
type AuthService interface {
	// Register creates an account and signs the caller in.
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	// Login checks credentials and issues a token.
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	// Me reports the signed-in user, or logged_in=false for any invalid token.
	Me(ctx context.Context, token string) dto.MeResponse
}
