package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pillulu/internal/application/dto"
	"pillulu/internal/pkg/auth"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(env *testEnv) AuthService {
	return NewAuthService(env.users, auth.NewTokens("test-secret"), logger.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterRequest{Email: "  Alice@Example.COM ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", reg.Email)
	assert.NotEmpty(t, reg.Token)
	assert.NotZero(t, reg.UserID)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "ALICE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.RegisterRequest
		want error
	}{
		{"missing fields", dto.RegisterRequest{}, appErrors.ErrInvalidInput},
		{"taken before length check", dto.RegisterRequest{Email: "BOB@example.com", Password: "x"}, appErrors.ErrEmailTaken},
		{"short password", dto.RegisterRequest{Email: "carl@example.com", Password: "12345"}, appErrors.ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_AuthenticateAndMe(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()
	reg, err := svc.Register(ctx, dto.RegisterRequest{Email: "dana@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, user.ID)

	me := svc.Me(ctx, reg.Token)
	assert.Equal(t, dto.MeResponse{LoggedIn: true, Email: "dana@example.com", UserID: reg.UserID}, me)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
	assert.Equal(t, dto.MeResponse{LoggedIn: false}, svc.Me(ctx, "garbage"))
	assert.False(t, svc.Me(ctx, "").LoggedIn)

	// Token of a deleted user.
	orphan, err := auth.NewTokens("test-secret").Issue(4242, "ghost@example.com")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
	assert.False(t, svc.Me(ctx, orphan).LoggedIn)
}

func TestIsNotFound(t *testing.T) {
	wrapped := fmt.Errorf("medication with ID 3 not found: %w", gorm.ErrRecordNotFound)
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct", gorm.ErrRecordNotFound, true},
		{"wrapped once", wrapped, true},
		{"wrapped twice", fmt.Errorf("lookup: %w", wrapped), true},
		{"other error", errors.New("disk full"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}
