package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Bootstrap is the node-local file configuration: everything needed to
// reach the KV store and bind listeners. The runtime Config of this
// package lives in the KV store and is layered at request time.
type Bootstrap struct {
	Server struct {
		Addr         string `yaml:"addr"`
		ReadTimeout  int    `yaml:"read_timeout_ms"`
		WriteTimeout int    `yaml:"write_timeout_ms"`
	} `yaml:"server"`

	Redis struct {
		URL       string `yaml:"url"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"redis"`

	RefData struct {
		Sources            []string `yaml:"sources"`
		CacheTTLMin        int      `yaml:"cache_ttl_min"`
		RefreshIntervalMin int      `yaml:"refresh_interval_min"`
	} `yaml:"refdata"`

	Record struct {
		Sink   string `yaml:"sink"`   // "redis", "log" or "none"
		Stream string `yaml:"stream"` // redis stream key
	} `yaml:"record"`

	Milter struct {
		Enabled bool   `yaml:"enabled"`
		Network string `yaml:"network"`
		Address string `yaml:"address"`
	} `yaml:"milter"`

	LogLevel string `yaml:"log_level"`
}

// DefaultBootstrap returns node-local defaults
func DefaultBootstrap() *Bootstrap {
	b := &Bootstrap{}
	b.Server.Addr = ":8025"
	b.Server.ReadTimeout = 5000
	b.Server.WriteTimeout = 5000
	b.Redis.URL = "redis://localhost:6379"
	b.Redis.KeyPrefix = "mailsift"
	b.RefData.CacheTTLMin = 60
	b.RefData.RefreshIntervalMin = 360
	b.Record.Sink = "log"
	b.Record.Stream = "mailsift:decisions"
	b.Milter.Network = "tcp"
	b.Milter.Address = "127.0.0.1:7357"
	b.LogLevel = "info"
	return b
}

// LoadBootstrap reads a yaml bootstrap file over the defaults. An empty
// path returns the defaults.
func LoadBootstrap(path string) (*Bootstrap, error) {
	b := DefaultBootstrap()
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bootstrap config: %v", err)
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to parse bootstrap config: %v", err)
	}
	return b, nil
}

// CacheTTL returns the refdata cache TTL as a duration
func (b *Bootstrap) CacheTTL() time.Duration {
	return time.Duration(b.RefData.CacheTTLMin) * time.Minute
}

// RefreshInterval returns the refdata refresh interval as a duration
func (b *Bootstrap) RefreshInterval() time.Duration {
	return time.Duration(b.RefData.RefreshIntervalMin) * time.Minute
}
