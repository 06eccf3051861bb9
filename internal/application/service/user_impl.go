package service

import (
	"context"
	"fmt"
	"strings"

	"pillulu/internal/application/dto"
	"pillulu/internal/domain/entity"
	"pillulu/internal/domain/repository"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"github.com/google/uuid"
)

const lineLinkCodeLen = 8

type userService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
func NewUserService(userRepo repository.UserRepository, log logger.Logger) UserService {
	return &userService{userRepo: userRepo, log: log}
}

// GetProfile returns the user's health profile.
func (s *userService) GetProfile(_ context.Context, user *entity.User) dto.ProfileResponse {
	return dto.ToProfileResponse(user)
}

// UpdateProfile sets the fields present in req.
func (s *userService) UpdateProfile(ctx context.Context, user *entity.User, req dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}
	if req.Region != nil {
		user.Region = req.Region
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update profile of user %d", user.ID), err)
		return dto.ProfileResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToProfileResponse(user), nil
}

// GetEmail returns the address reminder emails go to.
func (s *userService) GetEmail(_ context.Context, user *entity.User) dto.EmailResponse {
	return dto.EmailResponse{Email: user.Email}
}

// UpdateEmail changes the address reminder emails go to. It is also the login email.
func (s *userService) UpdateEmail(ctx context.Context, user *entity.User, req dto.EmailUpdateRequest) (dto.EmailResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || len(email) > 255 {
		return dto.EmailResponse{}, fmt.Errorf("%w: email must be 1-255 characters", appErrors.ErrInvalidInput)
	}
	if email == user.Email {
		return dto.EmailResponse{Email: email}, nil
	}

	other, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && other.ID != user.ID {
		return dto.EmailResponse{}, appErrors.ErrEmailTaken
	}
	if err != nil && !isNotFound(err) {
		s.log.Error("Failed to look up email", err)
		return dto.EmailResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	user.Email = email
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update email of user %d", user.ID), err)
		return dto.EmailResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("User %d changed reminder email", user.ID))
	return dto.EmailResponse{Email: email}, nil
}

// IssueLineLinkCode replaces any previous pending code.
func (s *userService) IssueLineLinkCode(ctx context.Context, user *entity.User) (dto.LineLinkCodeResponse, error) {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:lineLinkCodeLen])
	user.LineLinkCode = &code
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error(fmt.Sprintf("Failed to store LINE link code for user %d", user.ID), err)
		return dto.LineLinkCodeResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.LineLinkCodeResponse{
		Code:         code,
		Instructions: fmt.Sprintf("Add the Pillulu LINE bot as a friend and send it this code: %s", code),
		Linked:       user.HasLine(),
	}, nil
}

// LinkLine consumes code. Any other account holding lineUserID is unlinked first.
func (s *userService) LinkLine(ctx context.Context, code, lineUserID string) (*entity.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || lineUserID == "" {
		return nil, appErrors.ErrInvalidLinkCode
	}
	user, err := s.userRepo.FindByLineLinkCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrInvalidLinkCode
		}
		s.log.Error("Failed to look up LINE link code", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.userRepo.ClearLineUserID(ctx, lineUserID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to release LINE user %s before linking", lineUserID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	user.LineUserID = &lineUserID
	user.LineLinkCode = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error(fmt.Sprintf("Failed to link LINE user %s to user %d", lineUserID, user.ID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Linked LINE user %s to user %d", lineUserID, user.ID))
	return user, nil
}

// UnlinkLine detaches a LINE account (unfollow).
func (s *userService) UnlinkLine(ctx context.Context, lineUserID string) error {
	if err := s.userRepo.ClearLineUserID(ctx, lineUserID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to unlink LINE user %s", lineUserID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Unlinked LINE user %s", lineUserID))
	return nil
}
