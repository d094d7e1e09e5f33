package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrRoleNotFound is the error for unknown role names
var ErrRoleNotFound = goerrors.New("role not found", goerrors.CategoryNotFound).
	WithTextCode("ROLE_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrMismatchedHashAndPassword is the error for a failed password comparison
var ErrMismatchedHashAndPassword = goerrors.New("mismatched hash and password", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = goerrors.New("password must not be an empty string", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_PASSWORD")

// ErrNoValidatedIdentity means IssueToken was called without a prior
// successful ValidateCredentials. This is a caller contract violation, not a
// runtime condition we recover from.
var ErrNoValidatedIdentity = goerrors.New("no validated identity: call ValidateCredentials before IssueToken", goerrors.CategoryBadInput).
	WithTextCode("NO_VALIDATED_IDENTITY").
	WithCode(goerrors.CodeBadRequest)

// ErrMissingSigningKey aborts issuance when JwtSettings.secretKey is absent
// or empty. We never fall back to an unsigned or default-keyed token.
var ErrMissingSigningKey = goerrors.New("signing secret is missing or empty", goerrors.CategoryInternal).
	WithTextCode("MISSING_SIGNING_KEY")

// ErrInvalidExpiry aborts issuance when the configured token lifetime is not
// a positive number of minutes.
var ErrInvalidExpiry = goerrors.New("token expiration must be a positive number of minutes", goerrors.CategoryInternal).
	WithTextCode("INVALID_TOKEN_EXPIRY")

// ErrTokenExpired is returned when validating a token past its exp claim
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed is returned for tokens we cannot parse or verify
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED")

// IsTokenExpiredError will check for expired tokens. Structured errors match
// on identity or text code; the substring check only covers errors from
// outside this package.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	var serr *goerrors.Error
	if goerrors.As(err, &serr) && serr.TextCode == ErrTokenExpired.TextCode {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed tokens, same matching rules as
// IsTokenExpiredError.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	var serr *goerrors.Error
	if goerrors.As(err, &serr) && serr.TextCode == ErrTokenMalformed.TextCode {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
