package service

import (
	"context"
	"net/http"
	"testing"

	"olw_backend/internal/common"
	"olw_backend/internal/common/security"
	"olw_backend/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "a@b.com",
		Password: "secret1",
		Name:     "Ada",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.Token)
	assert.Greater(t, resp.User.ID, int64(0))
	assert.Equal(t, model.RoleStudent, resp.User.Role)
	assert.NotEqual(t, "secret1", resp.User.PasswordHash)
	assert.True(t, security.CheckPasswordHash("secret1", resp.User.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "other12", Name: "Eve"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.Equal(t, "Email already registered", err.Error())
	assert.Equal(t, http.StatusBadRequest, common.HTTPStatusFromError(err))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "secret1", Name: "Ada"}},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "secret1", Name: "Ada"}},
		{"short password", RegisterRequest{Email: "a@b.com", Password: "abc", Name: "Ada"}},
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "secret1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, http.StatusUnprocessableEntity, common.HTTPStatusFromError(err))
		})
	}
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@b.com", resp.User.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)

	// Wrong password and unknown email fail with the same generic message.
	_, err = svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "wrongpass"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", err.Error())

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@b.com", Password: "secret1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)

	_, err = svc.Profile(ctx, 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "User not found", err.Error())
}
