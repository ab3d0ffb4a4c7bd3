package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		detail string
	}{
		{"warn above block", func(c *Config) { c.Thresholds.Warn = 0.7 }, "below thresholds.block"},
		{"warn out of range", func(c *Config) { c.Thresholds.Warn = 0 }, "thresholds.warn"},
		{"block out of range", func(c *Config) { c.Thresholds.Block = 1.5 }, "thresholds.block"},
		{"weights off balance", func(c *Config) { c.Weights.Entropy = 0.5 }, "sum to 1.0"},
		{"negative weight", func(c *Config) {
			c.Weights.Entropy = -0.1
			c.Weights.MarkovChain = 0.5
		}, "must be in [0,1]"},
		{"relative origin", func(c *Config) { c.OriginURL = "/signup" }, "origin_url"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("error %q missing %q", err, tt.detail)
			}
		})
	}
}

func TestMergePartialDocument(t *testing.T) {
	cfg := Default()
	doc := `{"thresholds":{"warn":0.25},"flags":{"enable_origin_headers":true},"origin_url":"https://app.example.com/signup"}`
	if err := cfg.merge([]byte(doc)); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if cfg.Thresholds.Warn != 0.25 {
		t.Errorf("warn = %.2f, want 0.25", cfg.Thresholds.Warn)
	}
	if cfg.Thresholds.Block != 0.6 {
		t.Errorf("block = %.2f, untouched field must keep its default", cfg.Thresholds.Block)
	}
	if !cfg.Flags.EnableOriginHeaders {
		t.Error("flag overlay lost")
	}
	if !cfg.Flags.EnableDisposableCheck {
		t.Error("unrelated flag must keep its default")
	}
	if cfg.OriginURL != "https://app.example.com/signup" {
		t.Errorf("origin_url = %q", cfg.OriginURL)
	}
}

func TestMergeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := cfg.merge([]byte(`{"treshold":{"warn":0.2}}`))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "treshold") {
		t.Errorf("error %q should name the unknown key", err)
	}
}

func TestCheckDocument(t *testing.T) {
	if err := CheckDocument([]byte(`{"thresholds":{"warn":0.2,"block":0.7}}`)); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
	if err := CheckDocument([]byte(`{"thresholds":{"warn":0.9}}`)); err == nil {
		t.Error("warn above block should be rejected")
	}
	if err := CheckDocument([]byte(`not json`)); err == nil {
		t.Error("malformed document should be rejected")
	}
}

func TestCloneIsolation(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Thresholds.Warn = 0.11
	if a.Thresholds.Warn == 0.11 {
		t.Error("clone shares state with original")
	}
}

func TestSecretsRedactedFromJSON(t *testing.T) {
	cfg := Default()
	cfg.AdminAPIKey = "super-secret"
	cfg.SourceToken = "token"
	out, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "super-secret") || strings.Contains(string(out), "token") {
		t.Errorf("secrets leaked into serialised config: %s", out)
	}
}
