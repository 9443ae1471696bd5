package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

func TestValidateStructOK(t *testing.T) {
	err := ValidateStruct(signupPayload{Email: "ada@example.com", Password: "secret1", Name: "Ada"})
	assert.NoError(t, err)
}

func TestValidateStructMessages(t *testing.T) {
	tests := []struct {
		name    string
		payload signupPayload
		want    string
	}{
		{
			"missing email",
			signupPayload{Password: "secret1", Name: "Ada"},
			"email is required",
		},
		{
			"malformed email",
			signupPayload{Email: "not-an-email", Password: "secret1", Name: "Ada"},
			"email must be a valid email address",
		},
		{
			"short password",
			signupPayload{Email: "ada@example.com", Password: "123", Name: "Ada"},
			"password must be at least 6 characters",
		},
		{
			"missing name",
			signupPayload{Email: "ada@example.com", Password: "secret1"},
			"name is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidateStructURLTag(t *testing.T) {
	type payload struct {
		RepoLink string `json:"repoLink" validate:"required,url"`
	}
	err := ValidateStruct(payload{RepoLink: "not-a-url"})
	require.Error(t, err)
	assert.Equal(t, "repoLink must be a valid URL", err.Error())

	assert.NoError(t, ValidateStruct(payload{RepoLink: "https://github.com/ada/mern"}))
}
