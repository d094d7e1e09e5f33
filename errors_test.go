package auth_test

import (
	"errors"
	"testing"

	auth "github.com/bookstore/go-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured token expired error",
			err:      auth.ErrTokenExpired,
			expected: true,
		},
		{
			name:     "Legacy token expired error (string match)",
			err:      errors.New("some wrapper: token is expired"),
			expected: true,
		},
		{
			name:     "Structured error with the expired text code but a rendered message",
			err:      goerrors.New("could not refresh credentials", goerrors.CategoryAuth).WithTextCode("TOKEN_EXPIRED"),
			expected: true,
		},
		{
			name:     "Different structured error",
			err:      auth.ErrIdentityNotFound,
			expected: false,
		},
		{
			name:     "Different legacy error",
			err:      errors.New("invalid token"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := auth.IsTokenExpiredError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsMalformedError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured malformed error",
			err:      auth.ErrTokenMalformed,
			expected: true,
		},
		{
			name:     "Legacy malformed error (string match)",
			err:      errors.New("token is malformed"),
			expected: true,
		},
		{
			name:     "Legacy missing JWT error (string match)",
			err:      errors.New("missing or malformed JWT"),
			expected: true,
		},
		{
			name:     "Structured error with the malformed text code but a rendered message",
			err:      goerrors.New("bad token payload", goerrors.CategoryAuth).WithTextCode("TOKEN_MALFORMED"),
			expected: true,
		},
		{
			name:     "Different legacy error",
			err:      errors.New("invalid token"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := auth.IsMalformedError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestStructuredErrorProperties(t *testing.T) {
	t.Run("ErrIdentityNotFound", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryNotFound, auth.ErrIdentityNotFound.Category)
		assert.Equal(t, "identity not found", auth.ErrIdentityNotFound.Message)
		assert.True(t, goerrors.IsNotFound(auth.ErrIdentityNotFound))
	})

	t.Run("ErrRoleNotFound", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryNotFound, auth.ErrRoleNotFound.Category)
		assert.True(t, goerrors.IsNotFound(auth.ErrRoleNotFound))
	})

	t.Run("ErrMismatchedHashAndPassword", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, auth.ErrMismatchedHashAndPassword.Category)
		assert.Equal(t, "INVALID_CREDENTIALS", auth.ErrMismatchedHashAndPassword.TextCode)
	})

	t.Run("ErrNoValidatedIdentity", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryBadInput, auth.ErrNoValidatedIdentity.Category)
		assert.Equal(t, "NO_VALIDATED_IDENTITY", auth.ErrNoValidatedIdentity.TextCode)
	})

	t.Run("ErrMissingSigningKey", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryInternal, auth.ErrMissingSigningKey.Category)
		assert.Equal(t, "MISSING_SIGNING_KEY", auth.ErrMissingSigningKey.TextCode)
	})

	t.Run("ErrInvalidExpiry", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryInternal, auth.ErrInvalidExpiry.Category)
		assert.Equal(t, "INVALID_TOKEN_EXPIRY", auth.ErrInvalidExpiry.TextCode)
	})

	t.Run("ErrNoEmptyString", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryBadInput, auth.ErrNoEmptyString.Category)
		assert.Equal(t, "EMPTY_PASSWORD", auth.ErrNoEmptyString.TextCode)
	})
}
