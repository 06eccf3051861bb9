package repository

import (
	"context"
	"pillulu/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByID retrieves a user by primary key.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// FindByEmail retrieves a user by normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByLineLinkCode retrieves the user holding a pending LINE link code.
	FindByLineLinkCode(ctx context.Context, code string) (*entity.User, error)
	// FindByIDs retrieves several users at once (delivery fan-out).
	FindByIDs(ctx context.Context, ids []uint) ([]*entity.User, error)
	// Create creates a new user.
	Create(ctx context.Context, user *entity.User) error
	// Update updates an existing user.
	Update(ctx context.Context, user *entity.User) error
	// ClearLineUserID unlinks a LINE account from whichever user holds it.
	ClearLineUserID(ctx context.Context, lineUserID string) error
}
