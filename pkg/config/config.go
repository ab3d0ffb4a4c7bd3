package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
)

// Validation errors are wrapped in ErrInvalidConfig; KV outages in
// ErrStoreUnavailable.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("configuration store unavailable")
)

// Thresholds are the decision cutoffs. Invariant: 0 < warn < block < 1.
type Thresholds struct {
	Block float64 `json:"block"`
	Warn  float64 `json:"warn"`
}

// Weights mix the risk axes. Invariant: sum to 1.0 within 1e-6, each in [0,1].
type Weights struct {
	Entropy          float64 `json:"entropy"`
	DomainReputation float64 `json:"domainReputation"`
	TLDRisk          float64 `json:"tldRisk"`
	PatternDetection float64 `json:"patternDetection"`
	MarkovChain      float64 `json:"markovChain"`
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Entropy + w.DomainReputation + w.TLDRisk + w.PatternDetection + w.MarkovChain
}

// Flags toggle pipeline stages and side effects
type Flags struct {
	EnableDisposableCheck bool `json:"enable_disposable_check"`
	EnablePatternCheck    bool `json:"enable_pattern_check"`
	EnableResponseHeaders bool `json:"enable_response_headers"`
	EnableOriginHeaders   bool `json:"enable_origin_headers"`
	LogAllValidations     bool `json:"log_all_validations"`
}

// Config is the merged runtime configuration: defaults overlaid with the
// KV document, overlaid with secrets.
type Config struct {
	Thresholds Thresholds `json:"thresholds"`
	Weights    Weights    `json:"weights"`
	Flags      Flags      `json:"flags"`
	OriginURL  string     `json:"origin_url"`
	LogLevel   string     `json:"log_level"`

	// Secrets come from the environment overlay, never from the KV
	// document, and are redacted from serialised output.
	AdminAPIKey string `json:"-"`
	SourceToken string `json:"-"`
}

// Default returns the compiled-in configuration layer
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{Block: 0.6, Warn: 0.3},
		Weights: Weights{
			Entropy:          0.05,
			DomainReputation: 0.15,
			TLDRisk:          0.15,
			PatternDetection: 0.30,
			MarkovChain:      0.35,
		},
		Flags: Flags{
			EnableDisposableCheck: true,
			EnablePatternCheck:    true,
			EnableResponseHeaders: true,
			EnableOriginHeaders:   false,
			LogAllValidations:     true,
		},
		LogLevel: "info",
	}
}

// Validate checks the threshold and weight invariants and the origin URL
func (c *Config) Validate() error {
	var problems []string

	if c.Thresholds.Warn <= 0 || c.Thresholds.Warn >= 1 {
		problems = append(problems, "thresholds.warn must be in (0,1)")
	}
	if c.Thresholds.Block <= 0 || c.Thresholds.Block >= 1 {
		problems = append(problems, "thresholds.block must be in (0,1)")
	}
	if c.Thresholds.Warn >= c.Thresholds.Block {
		problems = append(problems, "thresholds.warn must be below thresholds.block")
	}

	weights := map[string]float64{
		"entropy":          c.Weights.Entropy,
		"domainReputation": c.Weights.DomainReputation,
		"tldRisk":          c.Weights.TLDRisk,
		"patternDetection": c.Weights.PatternDetection,
		"markovChain":      c.Weights.MarkovChain,
	}
	for name, w := range weights {
		if w < 0 || w > 1 {
			problems = append(problems, fmt.Sprintf("weights.%s must be in [0,1]", name))
		}
	}
	if math.Abs(c.Weights.Sum()-1.0) > 1e-6 {
		problems = append(problems, fmt.Sprintf("weights must sum to 1.0, got %.6f", c.Weights.Sum()))
	}

	if c.OriginURL != "" {
		u, err := url.Parse(c.OriginURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			problems = append(problems, "origin_url must be an absolute URL")
		}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log_level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}

// Clone returns a copy. Config has no reference fields, so a value copy
// suffices, but callers go through Clone so that stays true.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// CheckDocument validates a configuration document against the
// defaults without persisting it.
func CheckDocument(doc []byte) error {
	cfg := Default()
	if err := cfg.merge(doc); err != nil {
		return err
	}
	return cfg.Validate()
}

// merge applies a partial JSON document on top of c. Top-level keys
// override as whole objects except thresholds/weights/flags, which merge
// field-wise so a PATCH can set a single cutoff.
func (c *Config) merge(partial []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(partial, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for key, raw := range doc {
		var err error
		switch key {
		case "thresholds":
			err = json.Unmarshal(raw, &c.Thresholds)
		case "weights":
			err = json.Unmarshal(raw, &c.Weights)
		case "flags":
			err = json.Unmarshal(raw, &c.Flags)
		case "origin_url":
			err = json.Unmarshal(raw, &c.OriginURL)
		case "log_level":
			err = json.Unmarshal(raw, &c.LogLevel)
		default:
			return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
		}
		if err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrInvalidConfig, key, err)
		}
	}
	return nil
}
