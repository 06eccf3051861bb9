package service

import (
	"context"

	"pillulu/internal/application/dto"
	"pillulu/internal/domain/entity"
)

// UserService defines the interface for profile, email and LINE link settings.
type UserService interface {
	// GetProfile returns the user's health profile.
	GetProfile(ctx context.Context, user *entity.User) dto.ProfileResponse
	// UpdateProfile sets the fields present in req.
	UpdateProfile(ctx context.Context, user *entity.User, req dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
	// GetEmail returns the address reminder emails go to.
	GetEmail(ctx context.Context, user *entity.User) dto.EmailResponse
	// UpdateEmail changes the address reminder emails go to.
	UpdateEmail(ctx context.Context, user *entity.User, req dto.EmailUpdateRequest) (dto.EmailResponse, error)
	// IssueLineLinkCode creates a one-time code the user sends to the LINE bot.
	IssueLineLinkCode(ctx context.Context, user *entity.User) (dto.LineLinkCodeResponse, error)
	// LinkLine attaches a LINE account to the user holding code.
	LinkLine(ctx context.Context, code, lineUserID string) (*entity.User, error)
	// UnlinkLine detaches a LINE account (unfollow).
	UnlinkLine(ctx context.Context, lineUserID string) error
}
