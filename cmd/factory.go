package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jdscolam/mndp-firebase-auth/internal/audit"
	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
	"github.com/jdscolam/mndp-firebase-auth/internal/directory"
	"github.com/jdscolam/mndp-firebase-auth/internal/metrics"
	"github.com/jdscolam/mndp-firebase-auth/internal/roles"
	"github.com/jdscolam/mndp-firebase-auth/internal/service"
	"github.com/jdscolam/mndp-firebase-auth/internal/signers"
	"github.com/jdscolam/mndp-firebase-auth/internal/validators"
	"github.com/jdscolam/mndp-firebase-auth/pkg/client"
)

type Factory struct {
	// RemoteAddr is the address of the gateway to connect to.
	RemoteAddr string

	// ConfigPath points to the gateway configuration.
	ConfigPath string
}

func NewFactory() *Factory {
	return &Factory{}
}

// Components are the long-lived parts of a running gateway.
type Components struct {
	Config    *config.Config
	Validator core.CredentialValidator
	Directory core.Directory
	Signer    core.SigningAuthority
	Auditor   core.Auditor
	Metrics   *metrics.Metrics
	Exchanger *service.Exchanger
}

// Close releases the directory connection and the audit log.
func (c *Components) Close() error {
	var errs []error
	if c.Directory != nil {
		errs = append(errs, c.Directory.Close())
	}
	if c.Auditor != nil {
		errs = append(errs, c.Auditor.Close())
	}
	return errors.Join(errs...)
}

// GetClient returns a client for remote operations.
func (f *Factory) GetClient(opts ...client.Option) (*client.Client, error) {
	if f.RemoteAddr == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set MNDPAUTH_SERVER)")
	}
	return client.New(f.RemoteAddr, opts...), nil
}

func (f *Factory) bindConfigFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.ConfigPath, "config", "f", "", "The gateway config file to use (env MNDPAUTH_CONFIG)")
}

func (f *Factory) LoadConfig() (*config.Config, error) {
	path := f.ConfigPath
	if path == "" {
		path = viper.GetString(ConfigFileKey)
	}
	if path == "" {
		return nil, fmt.Errorf("config file not specified (use --config or set MNDPAUTH_CONFIG)")
	}
	return config.Load(path)
}

func (f *Factory) BuildValidator(ctx context.Context) (core.CredentialValidator, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, err
	}
	return validators.Build(ctx, cfg.Validator)
}

func (f *Factory) BuildDirectory(ctx context.Context) (core.Directory, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, err
	}
	return directory.Build(ctx, cfg.Directory)
}

func (f *Factory) BuildIssuer() (*service.Issuer, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, err
	}
	signer, err := signers.Build(cfg.Signer)
	if err != nil {
		return nil, err
	}
	return service.NewIssuer(signer, cfg.Roles.Claim)
}

// BuildComponents wires the whole exchange pipeline from the config file.
// The caller must Close the returned components.
func (f *Factory) BuildComponents(ctx context.Context) (*Components, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c := &Components{Config: cfg, Metrics: metrics.New()}

	if c.Validator, err = validators.Build(ctx, cfg.Validator); err != nil {
		return nil, err
	}
	if c.Signer, err = signers.Build(cfg.Signer); err != nil {
		return nil, err
	}
	issuer, err := service.NewIssuer(c.Signer, cfg.Roles.Claim)
	if err != nil {
		return nil, err
	}
	if c.Auditor, err = audit.New(cfg.Audit); err != nil {
		return nil, fmt.Errorf("creating auditor: %w", err)
	}
	if c.Directory, err = directory.Build(ctx, cfg.Directory); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Exchanger = service.NewExchanger(
		c.Validator,
		roles.NewResolver(c.Directory),
		issuer,
		c.Auditor,
		c.Metrics,
	)
	return c, nil
}
