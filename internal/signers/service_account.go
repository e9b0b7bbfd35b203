package signers

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

const ServiceAccountType = "service_account"

const (
	// CustomTokenAudience is the audience of Firebase custom tokens.
	CustomTokenAudience = "https://identitytoolkit.googleapis.com/google.identity.identitytoolkit.v1.IdentityToolkit"

	customTokenTTL = time.Hour
)

var _ core.SigningAuthority = (*ServiceAccount)(nil)

type ServiceAccountConfig struct {
	// CredentialsFile points to a service account JSON key file.
	// Fields set explicitly below take precedence over the file.
	CredentialsFile string `mapstructure:"credentials_file"`

	ProjectID    string `mapstructure:"project_id"`
	ClientEmail  string `mapstructure:"client_email"`
	PrivateKey   string `mapstructure:"private_key"`
	PrivateKeyID string `mapstructure:"private_key_id"`
}

type serviceAccountFile struct {
	ProjectID    string `json:"project_id"`
	ClientEmail  string `json:"client_email"`
	PrivateKey   string `json:"private_key"`
	PrivateKeyID string `json:"private_key_id"`
}

// ServiceAccount mints Firebase custom tokens signed with a service account key.
type ServiceAccount struct {
	name        string
	projectID   string
	clientEmail string
	keyID       string
	key         *rsa.PrivateKey
	now         func() time.Time
}

func NewServiceAccount(name string, conf ServiceAccountConfig) (*ServiceAccount, error) {
	if conf.CredentialsFile != "" {
		data, err := os.ReadFile(conf.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file: %w", err)
		}
		var file serviceAccountFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing credentials file: %w", err)
		}
		conf.ProjectID = firstNonEmpty(conf.ProjectID, file.ProjectID)
		conf.ClientEmail = firstNonEmpty(conf.ClientEmail, file.ClientEmail)
		conf.PrivateKey = firstNonEmpty(conf.PrivateKey, file.PrivateKey)
		conf.PrivateKeyID = firstNonEmpty(conf.PrivateKeyID, file.PrivateKeyID)
	}
	if conf.ClientEmail == "" {
		return nil, fmt.Errorf("service_account signer '%s' missing 'client_email'", name)
	}
	if conf.PrivateKey == "" {
		return nil, fmt.Errorf("service_account signer '%s' missing 'private_key'", name)
	}

	// keys passed through environment variables usually carry escaped newlines
	pem := strings.ReplaceAll(conf.PrivateKey, `\n`, "\n")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parsing private key of signer '%s': %w", name, err)
	}

	return &ServiceAccount{
		name:        name,
		projectID:   conf.ProjectID,
		clientEmail: conf.ClientEmail,
		keyID:       conf.PrivateKeyID,
		key:         key,
		now:         time.Now,
	}, nil
}

func NewServiceAccountFromConfig(cfg config.ComponentConfig) (*ServiceAccount, error) {
	var conf ServiceAccountConfig
	if err := cfg.Decode(&conf); err != nil {
		return nil, err
	}
	return NewServiceAccount(cfg.Name, conf)
}

func (s *ServiceAccount) Name() string {
	return s.name
}

// PublicKey returns the key that verifies minted tokens.
func (s *ServiceAccount) PublicKey() *rsa.PublicKey {
	return &s.key.PublicKey
}

func (s *ServiceAccount) Mint(ctx context.Context, subject string, claims map[string]bool) (core.SignedToken, error) {
	if err := validateSubject(subject); err != nil {
		return core.SignedToken{}, fmt.Errorf("invalid subject: %w", err)
	}
	if err := validateClaims(claims); err != nil {
		return core.SignedToken{}, fmt.Errorf("invalid claims: %w", err)
	}

	now := s.now()
	exp := now.Add(customTokenTTL)

	payload := jwt.MapClaims{
		"iss": s.clientEmail,
		"sub": s.clientEmail,
		"aud": CustomTokenAudience,
		"iat": now.Unix(),
		"exp": exp.Unix(),
		"uid": subject,
	}
	if len(claims) > 0 {
		payload["claims"] = claims
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, payload)
	if s.keyID != "" {
		token.Header["kid"] = s.keyID
	}
	signed, err := token.SignedString(s.key)
	if err != nil {
		return core.SignedToken{}, fmt.Errorf("failed to sign custom token: %w", err)
	}

	log.Ctx(ctx).Debug().
		Str("signer", s.name).
		Str("project_id", s.projectID).
		Int("claims", len(claims)).
		Msg("custom token minted")

	return core.SignedToken{
		Value:     signed,
		ExpiresAt: exp,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
