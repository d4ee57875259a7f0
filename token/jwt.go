package token

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kochabx/fetch/core/tag"
	"github.com/kochabx/fetch/core/validator"
	"github.com/kochabx/fetch/errors"
)

// JWTConfig configures a minting provider.
type JWTConfig struct {
	Secret        string   `json:"secret" mapstructure:"secret" validate:"required"`
	SigningMethod string   `json:"signing_method" mapstructure:"signing_method" default:"HS256" validate:"oneof=HS256 HS384 HS512"`
	Issuer        string   `json:"issuer" mapstructure:"issuer"`
	Subject       string   `json:"subject" mapstructure:"subject"`
	Audience      []string `json:"audience" mapstructure:"audience"`
	// TTL is the token lifetime in seconds.
	TTL int64 `json:"ttl" mapstructure:"ttl" default:"3600" validate:"gt=0"`
}

func (c *JWTConfig) signingMethod() jwt.SigningMethod {
	switch c.SigningMethod {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// JWT mints a fresh signed token on every call.
type JWT struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWT applies defaults to c and validates it.
func NewJWT(c JWTConfig) (*JWT, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, err
	}
	if err := validator.Validate.Struct(&c); err != nil {
		return nil, errors.BadRequest("invalid jwt config").WithCause(err)
	}
	return &JWT{config: c, now: time.Now}, nil
}

// Token signs a new token with iss, sub, aud, iat, exp and a random jti.
func (j *JWT) Token(context.Context) (string, error) {
	now := j.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    j.config.Issuer,
		Subject:   j.config.Subject,
		Audience:  j.config.Audience,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.config.TTL) * time.Second)),
	}
	return jwt.NewWithClaims(j.config.signingMethod(), claims).SignedString([]byte(j.config.Secret))
}
