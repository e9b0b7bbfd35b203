package validators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/audit"
	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
	"github.com/jdscolam/mndp-firebase-auth/internal/correlation"
)

const WhoamiType = "whoami"

const (
	DefaultWhoamiBaseURL = "https://api.pnut.io"
	DefaultWhoamiPath    = "/v0/token"
	DefaultSuccessCode   = http.StatusOK
	DefaultTimeout       = 10 * time.Second

	// maxResponseSize limits how much of the provider response is read.
	maxResponseSize = 1 << 20
)

var _ core.CredentialValidator = (*Whoami)(nil)

type WhoamiConfig struct {
	// BaseURL of the identity provider API.
	BaseURL string `mapstructure:"base_url"`

	// Path of the endpoint returning the token owner.
	Path string `mapstructure:"path"`

	// SuccessCode is the meta code the provider reports on success.
	SuccessCode int `mapstructure:"success_code"`

	// Timeout for the whole request to the provider.
	Timeout time.Duration `mapstructure:"timeout"`
}

// whoamiResponse is the envelope every provider response is wrapped in.
type whoamiResponse struct {
	Meta *struct {
		Code         int    `json:"code"`
		ErrorMessage string `json:"error_message"`
	} `json:"meta"`
	Data struct {
		User *struct {
			Username string `json:"username"`
		} `json:"user"`
		Username string `json:"username"`
	} `json:"data"`
}

func (r whoamiResponse) username() string {
	if r.Data.User != nil && r.Data.User.Username != "" {
		return r.Data.User.Username
	}
	return r.Data.Username
}

// Whoami validates credentials by asking the identity provider who they belong to.
// The endpoint and client are fixed at construction, so concurrent requests never share
// any per-call state.
type Whoami struct {
	name        string
	endpoint    string
	successCode int
	httpClient  *http.Client
}

func NewWhoami(name string, conf WhoamiConfig, httpClient *http.Client) (*Whoami, error) {
	if conf.BaseURL == "" {
		conf.BaseURL = DefaultWhoamiBaseURL
	}
	if conf.Path == "" {
		conf.Path = DefaultWhoamiPath
	}
	if conf.SuccessCode == 0 {
		conf.SuccessCode = DefaultSuccessCode
	}
	if !strings.HasPrefix(conf.BaseURL, "http://") && !strings.HasPrefix(conf.BaseURL, "https://") {
		return nil, fmt.Errorf("whoami validator '%s': base_url must be http(s), got '%s'", name, conf.BaseURL)
	}
	if httpClient == nil {
		timeout := conf.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Whoami{
		name:        name,
		endpoint:    strings.TrimRight(conf.BaseURL, "/") + "/" + strings.TrimLeft(conf.Path, "/"),
		successCode: conf.SuccessCode,
		httpClient:  httpClient,
	}, nil
}

func NewWhoamiFromConfig(cfg config.ComponentConfig) (*Whoami, error) {
	var conf WhoamiConfig
	if err := cfg.Decode(&conf); err != nil {
		return nil, err
	}
	return NewWhoami(cfg.Name, conf, nil)
}

func (w *Whoami) Name() string {
	return w.name
}

// Endpoint returns the full URL the validator calls.
func (w *Whoami) Endpoint() string {
	return w.endpoint
}

func (w *Whoami) Validate(ctx context.Context, credential string) (core.Identity, error) {
	logger := log.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint, nil)
	if err != nil {
		return core.Identity{}, core.TransportFailed(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", audit.CreateUserAgent(correlation.ID(ctx), w.name))

	resp, err := w.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("validator", w.name).Msg("identity provider unreachable")
		return core.Identity{}, core.TransportFailed(fmt.Errorf("performing request: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// the provider wraps rejections in the same envelope, so the body is decoded
	// regardless of the HTTP status
	var envelope whoamiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&envelope); err != nil {
		logger.Error().Err(err).
			Int("status", resp.StatusCode).
			Str("validator", w.name).
			Msg("malformed identity provider response")
		return core.Identity{}, core.TransportFailed(
			fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err))
	}
	if envelope.Meta == nil {
		logger.Error().Int("status", resp.StatusCode).Str("validator", w.name).
			Msg("identity provider response has no meta")
		return core.Identity{}, core.TransportFailed(
			fmt.Errorf("response (status %d) is missing meta", resp.StatusCode))
	}

	if envelope.Meta.Code != w.successCode {
		message := envelope.Meta.ErrorMessage
		if message == "" {
			message = core.DefaultErrorMessage
		}
		logger.Warn().
			Int("meta_code", envelope.Meta.Code).
			Str("meta_error", envelope.Meta.ErrorMessage).
			Str("validator", w.name).
			Msg("credential rejected by identity provider")
		return core.Identity{}, core.ValidationFailed(envelope.Meta.Code, message)
	}

	username := envelope.username()
	if username == "" {
		logger.Error().Str("validator", w.name).Msg("identity provider returned no username")
		return core.Identity{}, core.TransportFailed(errors.New("success response without username"))
	}

	return core.Identity{Username: username}, nil
}
