package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService issues and validates signed bearer tokens
type TokenService interface {
	Issue(claims []Claim) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (*JWTClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	material        SigningMaterial
	tokenExpiration time.Duration
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

// NewTokenService creates a new TokenService instance.
func NewTokenService(material SigningMaterial, tokenExpiration time.Duration, issuer string, audience jwt.ClaimStrings, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		material:        material,
		tokenExpiration: tokenExpiration,
		issuer:          issuer,
		audience:        audience,
		logger:          logger,
	}
}

// NewTokenServiceFromConfig resolves signing material and token options from
// configuration. Fails if the signing secret is absent.
func NewTokenServiceFromConfig(cfg Config, logger Logger) (TokenService, error) {
	material, err := SigningMaterialFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewTokenService(material, cfg.GetTokenExpiration(), cfg.GetIssuer(), cfg.GetAudience(), logger), nil
}

// Issue builds the time-bounded token descriptor from an ordered claim
// sequence, signs it, and serializes it to the compact three-segment
// encoding. Expiry is issuance time plus the configured lifetime; a zero or
// negative lifetime refuses to issue.
func (ts *TokenServiceImpl) Issue(claims []Claim) (string, error) {
	if ts.tokenExpiration <= 0 {
		return "", ErrInvalidExpiry
	}

	now := time.Now()
	descriptor := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiration)),
		},
	}
	descriptor.applyClaims(claims)
	descriptor.RegisteredClaims.Subject = descriptor.Name

	return ts.SignClaims(descriptor)
}

// SignClaims signs arbitrary JWT claims using the configured signing material.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	if len(ts.material.Key) == 0 {
		return "", ErrMissingSigningKey
	}

	method := ts.material.Method
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(method, claims)

	signedString, err := token.SignedString(ts.material.Key)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, enforcing signature, issuer,
// audience, and expiry with the same symmetric secret used at issuance.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.material.Key, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
