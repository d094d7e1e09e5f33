package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// RegisterUserRequest is the incoming registration payload
type RegisterUserRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles"`
	UseHashid bool     `json:"-"`
}

// RegistrationResult is the structured outcome of a registration attempt.
// Expected failures (duplicate username, password policy, unknown role) show
// up as field errors with Succeeded false; they are outcomes, not Go errors.
type RegistrationResult struct {
	Succeeded   bool              `json:"succeeded"`
	User        *User             `json:"user,omitempty"`
	FieldErrors map[string]string `json:"errors,omitempty"`
}

// RegistrationFailure builds a failed result for a single field
func RegistrationFailure(field, message string) *RegistrationResult {
	return &RegistrationResult{
		Succeeded:   false,
		FieldErrors: map[string]string{field: message},
	}
}

// RegisterUser maps the payload to a user record and delegates creation and
// password hashing to the CredentialStore. Roles are assigned only when the
// base create succeeded; a created user whose role assignment fails is kept
// (accepted non-atomic behavior), with the assignment failure reported on
// the result.
func (s *Auther) RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegistrationResult, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during user registration")
	default:
	}

	user := &User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  getUsername(req.Username, req.Email),
		Email:     req.Email,
	}

	if req.UseHashid {
		if id, err := hashid.NewUUID(req.Email); err == nil {
			user.ID = id
		}
	}

	result, err := s.store.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	if !result.Succeeded {
		return result, nil
	}

	if len(req.Roles) == 0 {
		return result, nil
	}

	roleResult, err := s.store.AddRoles(ctx, result.User, req.Roles)
	if err != nil {
		s.logger.Warn("RegisterUser role assignment failed", "user", result.User.Username, "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not assign roles")
	}

	if !roleResult.Succeeded {
		roleResult.User = result.User
		return roleResult, nil
	}

	return result, nil
}

func getUsername(username, email string) string {
	if username != "" {
		return username
	}

	if strings.Contains(email, "@") {
		username = strings.Split(email, "@")[0]
	}

	return username
}
