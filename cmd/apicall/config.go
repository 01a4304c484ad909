package main

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/loykin/apicall"
	"github.com/loykin/apicall/internal/common"
	"gopkg.in/yaml.v3"
)

type ClientConfig struct {
	// Explicit options only
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version"`
	Timeout       string `mapstructure:"timeout" yaml:"timeout"`
}

type AuthConfig struct {
	// Provider type key (e.g., "basic", "token", "oauth2")
	Type string `mapstructure:"type" yaml:"type"`
	// Header to inject; defaults to Authorization
	Header string `mapstructure:"header" yaml:"header"`
	// Provider-specific configuration
	Config map[string]interface{} `mapstructure:"config" yaml:"config"`
}

type RetryConfig struct {
	MaxRetries   int    `mapstructure:"max_retries" yaml:"max_retries"`
	InitialDelay string `mapstructure:"initial_delay" yaml:"initial_delay"`
	MaxDelay     string `mapstructure:"max_delay" yaml:"max_delay"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format string `mapstructure:"format" yaml:"format"` // text, json, color
}

type PollConfig struct {
	// Delay is the initial poll delay for long-running operations.
	Delay string `mapstructure:"delay" yaml:"delay"`
}

type ConfigDoc struct {
	Client  ClientConfig  `mapstructure:"client" yaml:"client"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Retry   *RetryConfig  `mapstructure:"retry" yaml:"retry"`
	Poll    PollConfig    `mapstructure:"poll" yaml:"poll"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// loadConfig reads the config document; a missing file yields defaults.
func loadConfig(path string) (*ConfigDoc, error) {
	var doc ConfigDoc
	clean := filepath.Clean(path)
	// #nosec G304 -- path comes from the --config flag
	data, err := os.ReadFile(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return &doc, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// parseTLSVersion converts a TLS version string to the corresponding
// crypto/tls constant. Returns 0 if the version string is not recognized.
func parseTLSVersion(version string) uint16 {
	switch strings.TrimSpace(strings.ToLower(version)) {
	case "1.0", "10", "tls1.0", "tls10":
		return tls.VersionTLS10
	case "1.1", "11", "tls1.1", "tls11":
		return tls.VersionTLS11
	case "1.2", "12", "tls1.2", "tls12":
		return tls.VersionTLS12
	case "1.3", "13", "tls1.3", "tls13":
		return tls.VersionTLS13
	default:
		return 0
	}
}

// clientOptions translates the config document into client construction
// options.
func (c *ConfigDoc) clientOptions() []apicall.Option {
	h := &apicall.HTTPClientConfig{}

	minV := parseTLSVersion(c.Client.MinTLSVersion)
	maxV := parseTLSVersion(c.Client.MaxTLSVersion)
	if minV != 0 || maxV != 0 || c.Client.Insecure {
		// #nosec G402 -- Intentionally allow self-signed certificates when explicitly configured
		h.TlsConfig = &tls.Config{MinVersion: minV, MaxVersion: maxV, InsecureSkipVerify: c.Client.Insecure}
	}
	if s := strings.TrimSpace(c.Client.Timeout); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			h.Timeout = d
		}
	}

	opts := []apicall.Option{apicall.WithHTTPClient(h)}

	if c.Retry != nil {
		rc := &apicall.RetryConfig{MaxRetries: c.Retry.MaxRetries}
		if d, err := time.ParseDuration(strings.TrimSpace(c.Retry.InitialDelay)); err == nil {
			rc.InitialDelay = d
		}
		if d, err := time.ParseDuration(strings.TrimSpace(c.Retry.MaxDelay)); err == nil {
			rc.MaxDelay = d
		}
		opts = append(opts, apicall.WithRetry(rc))
	}

	if strings.TrimSpace(c.Auth.Type) != "" {
		opts = append(opts, apicall.WithAuth(c.Auth.Header, c.Auth.Type, c.Auth.Config))
	}

	if s := strings.TrimSpace(c.Poll.Delay); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			opts = append(opts, apicall.WithPollDelay(d))
		}
	}

	return opts
}

// setupLogging installs the configured default logger.
func (c *ConfigDoc) setupLogging() {
	level := common.ParseLogLevel(strings.TrimSpace(strings.ToLower(c.Logging.Level)))
	switch strings.TrimSpace(strings.ToLower(c.Logging.Format)) {
	case "json":
		common.SetDefaultLogger(common.NewJSONLogger(level))
	case "color":
		common.SetDefaultLogger(common.NewColorLogger(level))
	default:
		common.SetDefaultLogger(common.NewLogger(level))
	}
}
