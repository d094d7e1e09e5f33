package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SigningMaterial pairs the symmetric secret with the HMAC signing method.
// The key bytes are a secret and must never be logged.
type SigningMaterial struct {
	Method jwt.SigningMethod
	Key    []byte
}

// SigningMaterialFromConfig resolves signing material from configuration.
// An absent or empty secret is a configuration error; issuance must abort
// rather than degrade to a weakly signed token.
func SigningMaterialFromConfig(cfg Config) (SigningMaterial, error) {
	secret := cfg.GetSigningKey()
	if secret == "" {
		return SigningMaterial{}, ErrMissingSigningKey
	}

	return SigningMaterial{
		Method: jwt.SigningMethodHS256,
		Key:    []byte(secret),
	}, nil
}
