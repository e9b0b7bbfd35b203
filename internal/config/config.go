package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultAddr            = ":8080"
	DefaultExchangeRoute   = "/auth"
	DefaultRoleClaim       = "hasRole"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultAuditCapacity   = 1000
)

// envRef matches ${NAME}. A bare $ is left alone so secrets may contain it.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Validator ComponentConfig `yaml:"validator"`
	Directory ComponentConfig `yaml:"directory"`
	Signer    ComponentConfig `yaml:"signer"`
	Roles     RolesConfig     `yaml:"roles"`
	Audit     AuditConfig     `yaml:"audit"`
}

// ServerConfig holds configuration for the HTTP transport.
type ServerConfig struct {
	// Addr is the address to listen on, e.g. ":8080".
	Addr string `yaml:"addr"`

	// ExchangeRoute is the path of the exchange endpoint.
	ExchangeRoute string `yaml:"exchange_route"`

	// CORSOrigins lists the origins allowed to call the gateway from a browser.
	// "*" reflects any origin.
	CORSOrigins []string `yaml:"cors_origins"`

	// Metrics exposes /metrics if enabled.
	Metrics bool `yaml:"metrics"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// AdminToken protects the audit query route. The route is not mounted without it.
	AdminToken string `yaml:"admin_token"`
}

// ComponentConfig holds configuration for one pluggable component
// (credential validator, directory or signing authority).
type ComponentConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`   // e.g., "whoami", "redis", "service_account"
	Config map[string]any `yaml:"config"` // type specific settings
}

// RolesConfig controls role enrichment.
type RolesConfig struct {
	// Claim is the name of the boolean claim added to tokens of role holders.
	Claim string `yaml:"claim"`
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"` // e.g., "file", "memory"

	// Capacity bounds the memory audit, the oldest entries are dropped first.
	Capacity int `yaml:"capacity"`
}

// Load reads and parses the configuration file at the given path.
// Environment variables in the form ${NAME} are expanded before parsing.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(expandEnv(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

// expandEnv replaces every ${NAME} with the value of the environment variable NAME.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ExchangeRoute == "" {
		c.Server.ExchangeRoute = DefaultExchangeRoute
	}
	if !strings.HasPrefix(c.Server.ExchangeRoute, "/") {
		return fmt.Errorf("server.exchange_route must start with '/', got '%s'", c.Server.ExchangeRoute)
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if err := c.Validator.validate("validator", "whoami"); err != nil {
		return err
	}
	if err := c.Directory.validate("directory", "redis"); err != nil {
		return err
	}
	if err := c.Signer.validate("signer", ""); err != nil {
		return err
	}

	if c.Roles.Claim == "" {
		c.Roles.Claim = DefaultRoleClaim
	}

	if c.Audit.Enabled {
		switch c.Audit.Type {
		case "file":
			if c.Audit.Path == "" {
				return fmt.Errorf("audit.path is required for file audit")
			}
		case "memory", "":
			c.Audit.Type = "memory"
			if c.Audit.Capacity <= 0 {
				c.Audit.Capacity = DefaultAuditCapacity
			}
		default:
			return fmt.Errorf("unknown audit type '%s'", c.Audit.Type)
		}
	}
	return nil
}

func (c *ComponentConfig) validate(section, defaultType string) error {
	if c.Type == "" {
		if defaultType == "" {
			return fmt.Errorf("%s.type is required", section)
		}
		c.Type = defaultType
	}
	if c.Name == "" {
		c.Name = c.Type
	}
	if c.Config == nil {
		c.Config = map[string]any{}
	}
	return nil
}
