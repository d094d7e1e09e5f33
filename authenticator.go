package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Auther orchestrates credential validation, claims assembly, and token
// issuance over a CredentialStore. It holds no per-request state; the
// validated identity travels as an explicit handle between calls.
type Auther struct {
	store  CredentialStore
	config Config
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store CredentialStore, cfg Config) *Auther {
	return &Auther{
		store:  store,
		config: cfg,
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// ValidateCredentials looks up the identity by username and checks the
// password. Unknown user and wrong password are expected outcomes, both
// collapse to (nil, false); neither is an error. On success the returned
// ValidatedIdentity is the caller's ticket for IssueToken.
func (s *Auther) ValidateCredentials(ctx context.Context, username, password string) (*ValidatedIdentity, bool) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if !goerrors.IsNotFound(err) {
			s.logger.Error("ValidateCredentials store lookup failed", "error", err)
			return nil, false
		}
		s.logger.Warn("ValidateCredentials: authentication failed. Wrong username or password.")
		return nil, false
	}

	if user == nil || !s.store.CheckPassword(ctx, user, password) {
		s.logger.Warn("ValidateCredentials: authentication failed. Wrong username or password.")
		return nil, false
	}

	return &ValidatedIdentity{user: user}, true
}

// IssueToken produces the serialized bearer token for a previously validated
// identity: resolve signing material from configuration, enumerate roles,
// build the ordered claims, sign, serialize. A nil identity is a
// caller contract violation and fails with ErrNoValidatedIdentity.
func (s *Auther) IssueToken(ctx context.Context, identity *ValidatedIdentity) (string, error) {
	if identity == nil || identity.user == nil {
		return "", ErrNoValidatedIdentity
	}

	tokenService, err := NewTokenServiceFromConfig(s.config, s.logger)
	if err != nil {
		return "", err
	}

	roles, err := s.store.GetRoles(ctx, identity.user)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to enumerate roles for token claims")
	}

	claims, err := BuildClaims(identity, roles)
	if err != nil {
		return "", err
	}

	return tokenService.Issue(claims)
}

var _ Authenticator = (*Auther)(nil)
