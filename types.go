package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Username() string
	Email() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	ValidateCredentials(ctx context.Context, username, password string) (*ValidatedIdentity, bool)
	IssueToken(ctx context.Context, identity *ValidatedIdentity) (string, error)
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegistrationResult, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetIssuer() string
	GetAudience() []string
	GetTokenExpiration() time.Duration
}

// CredentialStore is the store we consult for users, passwords, and role
// memberships. FindByUsername returns a not-found error (goerrors.IsNotFound)
// for unknown names. GetRoles enumerates role names in assignment order;
// that order is the claims-order contract.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	CheckPassword(ctx context.Context, user *User, password string) bool
	GetRoles(ctx context.Context, user *User) ([]string, error)
	CreateUser(ctx context.Context, user *User, password string) (*RegistrationResult, error)
	AddRoles(ctx context.Context, user *User, roles []string) (*RegistrationResult, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// ValidatedIdentity is the proof of a successful credential check. It is
// returned by Auther.ValidateCredentials and required by Auther.IssueToken,
// so the validate-before-issue contract is carried by an explicit value
// instead of hidden service state.
type ValidatedIdentity struct {
	user *User
}

func (v *ValidatedIdentity) ID() string {
	if v == nil || v.user == nil {
		return ""
	}
	return v.user.ID.String()
}

func (v *ValidatedIdentity) Username() string {
	if v == nil || v.user == nil {
		return ""
	}
	return v.user.Username
}

func (v *ValidatedIdentity) Email() string {
	if v == nil || v.user == nil {
		return ""
	}
	return v.user.Email
}

var _ Identity = (*ValidatedIdentity)(nil)

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
