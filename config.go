package auth

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// JWTSettings is the typed view of the "JwtSettings" configuration section.
// Expires stays a string in the wire format and is parsed during validation,
// so a bad value fails once at startup instead of at every issuance.
type JWTSettings struct {
	SecretKey     string `json:"secretKey"`
	ValidIssuer   string `json:"validIssuer"`
	ValidAudience string `json:"validAudience"`
	Expires       string `json:"expires"`
}

type appSettings struct {
	JWT JWTSettings `json:"JwtSettings"`
}

// LoadSettings reads an appsettings-style JSON document and returns its
// validated JwtSettings section.
func LoadSettings(path string) (*JWTSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read settings file")
	}

	settings := &appSettings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to parse settings file")
	}

	if err := settings.JWT.Validate(); err != nil {
		return nil, err
	}

	return &settings.JWT, nil
}

// Validate will run validation rules
func (s JWTSettings) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(
			&s.SecretKey,
			validation.Required.Error("signing secret is required"),
		),
		validation.Field(
			&s.Expires,
			validation.Required.Error("token expiration is required"),
			validation.By(validateExpiresMinutes),
		),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "invalid JwtSettings configuration").
			WithTextCode("INVALID_JWT_SETTINGS")
	}
	return nil
}

func validateExpiresMinutes(value any) error {
	raw, _ := value.(string)
	minutes, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return goerrors.New("must be a decimal number of minutes", goerrors.CategoryValidation)
	}
	if minutes < 0 {
		return goerrors.New("must not be negative", goerrors.CategoryValidation)
	}
	return nil
}

func (s JWTSettings) GetSigningKey() string {
	return s.SecretKey
}

func (s JWTSettings) GetSigningMethod() string {
	return "HS256"
}

func (s JWTSettings) GetIssuer() string {
	return s.ValidIssuer
}

func (s JWTSettings) GetAudience() []string {
	if s.ValidAudience == "" {
		return nil
	}
	return []string{s.ValidAudience}
}

// GetTokenExpiration returns the configured lifetime. Expires is a decimal
// number of minutes and fractions are honored ("0.5" is thirty seconds).
// Callers are expected to have run Validate; an unparseable value maps to 0,
// which the token issuer refuses.
func (s JWTSettings) GetTokenExpiration() time.Duration {
	minutes, err := strconv.ParseFloat(s.Expires, 64)
	if err != nil || minutes < 0 {
		return 0
	}
	return time.Duration(minutes * float64(time.Minute))
}

var _ Config = JWTSettings{}
