package main

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"
)

func TestParseTLSVersion(t *testing.T) {
	cases := map[string]uint16{
		"1.0":    tls.VersionTLS10,
		"tls1.1": tls.VersionTLS11,
		"12":     tls.VersionTLS12,
		"TLS1.3": tls.VersionTLS13,
		" 1.3 ":  tls.VersionTLS13,
		"":       0,
		"ssl3":   0,
	}
	for in, want := range cases {
		if got := parseTLSVersion(in); got != want {
			t.Errorf("parseTLSVersion(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.Auth.Type != "" || cfg.Retry != nil {
		t.Fatalf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadConfig_ParsesDocument(t *testing.T) {
	doc := `
client:
  insecure: true
  min_tls_version: "1.2"
  timeout: 5s
auth:
  type: token
  config:
    token: abc
retry:
  max_retries: 2
  initial_delay: 1ms
poll:
  delay: 10s
logging:
  level: debug
  format: json
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !cfg.Client.Insecure || cfg.Client.Timeout != "5s" {
		t.Fatalf("unexpected client section: %+v", cfg.Client)
	}
	if cfg.Auth.Type != "token" || cfg.Auth.Config["token"] != "abc" {
		t.Fatalf("unexpected auth section: %+v", cfg.Auth)
	}
	if cfg.Retry == nil || cfg.Retry.MaxRetries != 2 {
		t.Fatalf("unexpected retry section: %+v", cfg.Retry)
	}
	if cfg.Poll.Delay != "10s" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected poll/logging sections: %+v %+v", cfg.Poll, cfg.Logging)
	}

	opts := cfg.clientOptions()
	if len(opts) != 4 {
		t.Fatalf("expected 4 client options (http, retry, auth, poll), got %d", len(opts))
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("client: [not a map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
