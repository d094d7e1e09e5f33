package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimType enumerates the identity assertions we embed in tokens
type ClaimType string

const (
	// ClaimTypeName is the claim carrying the username
	ClaimTypeName ClaimType = "name"
	// ClaimTypeRole is the claim carrying a single role membership
	ClaimTypeRole ClaimType = "role"
)

// Claim is a single immutable identity assertion
type Claim struct {
	Type  ClaimType
	Value string
}

// BuildClaims assembles the ordered claim sequence for a validated identity:
// exactly one name claim first, then one role claim per role in the store's
// enumeration order. Duplicate role names are emitted as duplicate claims;
// callers that need uniqueness dedupe upstream.
func BuildClaims(identity *ValidatedIdentity, roles []string) ([]Claim, error) {
	if identity == nil || identity.user == nil {
		return nil, ErrNoValidatedIdentity
	}

	claims := make([]Claim, 0, len(roles)+1)
	claims = append(claims, Claim{Type: ClaimTypeName, Value: identity.Username()})

	for _, role := range roles {
		claims = append(claims, Claim{Type: ClaimTypeRole, Value: role})
	}

	return claims, nil
}

// JWTClaims is the token payload: registered claims plus the name and
// role assertions produced by BuildClaims. Roles keeps the builder's order.
type JWTClaims struct {
	jwt.RegisteredClaims
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Username returns the name claim
func (c *JWTClaims) Username() string {
	return c.Name
}

// HasRole checks if the token carries a specific role claim
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Claims re-materializes the ordered claim sequence from the payload
func (c *JWTClaims) Claims() []Claim {
	claims := make([]Claim, 0, len(c.Roles)+1)
	if c.Name != "" {
		claims = append(claims, Claim{Type: ClaimTypeName, Value: c.Name})
	}
	for _, role := range c.Roles {
		claims = append(claims, Claim{Type: ClaimTypeRole, Value: role})
	}
	return claims
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAtTime returns the issued at time
func (c *JWTClaims) IssuedAtTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// applyClaims folds the ordered claim sequence into the JWT payload. The
// name claim maps to Name, role claims append to Roles in order.
func (c *JWTClaims) applyClaims(claims []Claim) {
	for _, claim := range claims {
		switch claim.Type {
		case ClaimTypeName:
			c.Name = claim.Value
		case ClaimTypeRole:
			c.Roles = append(c.Roles, claim.Value)
		}
	}
}
