package sqlite

import (
	"context"
	"errors"
	"fmt"
	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a user by primary key.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := conn(ctx, r.db).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by normalized email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := conn(ctx, r.db).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find user by email: %w", err)
	}
	return &user, nil
}

// FindByLineLinkCode retrieves the user holding a pending LINE link code.
func (r *userRepository) FindByLineLinkCode(ctx context.Context, code string) (*entity.User, error) {
	var user entity.User
	if err := conn(ctx, r.db).Where("line_link_code = ?", code).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user with link code %s: %w", code, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find user by link code: %w", err)
	}
	return &user, nil
}

// FindByIDs retrieves several users at once.
func (r *userRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entity.User, error) {
	var users []*entity.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find users by ids: %w", err)
	}
	return users, nil
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create user %s: %w", user.Email, err)
	}
	return nil
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	// Use Save to update all fields, including zero values
	if err := conn(ctx, r.db).Save(user).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update user %d: %w", user.ID, err)
	}
	return nil
}

// ClearLineUserID unlinks a LINE account from whichever user holds it.
func (r *userRepository) ClearLineUserID(ctx context.Context, lineUserID string) error {
	err := conn(ctx, r.db).Model(&entity.User{}).
		Where("line_user_id = ?", lineUserID).
		Update("line_user_id", nil).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to unlink LINE user %s: %w", lineUserID, err)
	}
	return nil
}
