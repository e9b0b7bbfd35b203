package signers

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

const HMACType = "hmac"

const (
	DefaultHMACIssuer = "mndpauth"
	DefaultHMACTTL    = time.Hour

	minSecretLength = 32
)

var _ core.SigningAuthority = (*HMAC)(nil)

type HMACConfig struct {
	// Secret is the shared signing key, at least 32 bytes.
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	Audience string        `mapstructure:"audience"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// HMAC mints HS256 session tokens. Custom claims are embedded at the top level.
type HMAC struct {
	name     string
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewHMAC(name string, conf HMACConfig) (*HMAC, error) {
	if len(conf.Secret) < minSecretLength {
		return nil, fmt.Errorf("hmac signer '%s': secret must be at least %d bytes", name, minSecretLength)
	}
	if conf.Issuer == "" {
		conf.Issuer = DefaultHMACIssuer
	}
	if conf.TTL <= 0 {
		conf.TTL = DefaultHMACTTL
	}
	return &HMAC{
		name:     name,
		secret:   []byte(conf.Secret),
		issuer:   conf.Issuer,
		audience: conf.Audience,
		ttl:      conf.TTL,
		now:      time.Now,
	}, nil
}

func NewHMACFromConfig(cfg config.ComponentConfig) (*HMAC, error) {
	var conf HMACConfig
	if err := cfg.Decode(&conf); err != nil {
		return nil, err
	}
	return NewHMAC(cfg.Name, conf)
}

func (h *HMAC) Name() string {
	return h.name
}

func (h *HMAC) Mint(_ context.Context, subject string, claims map[string]bool) (core.SignedToken, error) {
	if err := validateSubject(subject); err != nil {
		return core.SignedToken{}, fmt.Errorf("invalid subject: %w", err)
	}
	if err := validateClaims(claims); err != nil {
		return core.SignedToken{}, fmt.Errorf("invalid claims: %w", err)
	}

	now := h.now()
	exp := now.Add(h.ttl)

	payload := jwt.MapClaims{
		"iss": h.issuer,
		"sub": subject,
		"iat": now.Unix(),
		"exp": exp.Unix(),
		"jti": xid.New().String(),
	}
	if h.audience != "" {
		payload["aud"] = h.audience
	}
	for k, v := range claims {
		payload[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return core.SignedToken{}, fmt.Errorf("failed to sign hmac token: %w", err)
	}

	return core.SignedToken{
		Value:     signed,
		ExpiresAt: exp,
	}, nil
}

// Verify parses and validates a token minted by this signer.
func (h *HMAC) Verify(tokenString string) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithTimeFunc(h.now),
	}
	if h.audience != "" {
		opts = append(opts, jwt.WithAudience(h.audience))
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}
	return claims, nil
}
