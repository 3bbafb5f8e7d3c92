package config

import "testing"

func validConfig() *Config {
	return &Config{
		Bind:      "0.0.0.0",
		Port:      8080,
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"production env", func(c *Config) { c.Env = "production" }, false},
		{"tls pair", func(c *Config) { c.TLSCert = "cert.pem"; c.TLSKey = "key.pem" }, false},
		{"cert without key", func(c *Config) { c.TLSCert = "cert.pem" }, true},
		{"key without cert", func(c *Config) { c.TLSKey = "key.pem" }, true},
		{"port too low", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 65536 }, true},
		{"bogus env", func(c *Config) { c.Env = "staging" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddrAndScheme(t *testing.T) {
	cfg := validConfig()
	if got := cfg.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %s, want 0.0.0.0:8080", got)
	}
	if got := cfg.Scheme(); got != "http" {
		t.Errorf("Scheme() = %s, want http", got)
	}

	cfg.TLSCert = "cert.pem"
	cfg.TLSKey = "key.pem"
	if got := cfg.Scheme(); got != "https" {
		t.Errorf("Scheme() with tls = %s, want https", got)
	}
}
