package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/transitlab/busplan/core/battery"
	"github.com/transitlab/busplan/core/repair"
	"github.com/transitlab/busplan/core/timeline"
	"github.com/transitlab/busplan/infra/metrics"
)

// Config aggregates all pipeline and service settings.
type Config struct {
	Timeline timeline.Config `json:"timeline"`
	Battery  battery.Config  `json:"battery"`
	Repair   repair.Config   `json:"repair"`
	Metrics  metrics.Config  `json:"metrics"`
	Server   ServerConfig    `json:"server"`
}

// Load reads the configuration file (YAML or JSON by extension),
// applies BUSPLAN_-prefixed environment overrides, then defaults and
// validation per section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BUSPLAN_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "busplan_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the standard configuration without reading a file,
// used when no config path is given.
func Default() *Config {
	var cfg Config
	cfg.ApplyDefaults()
	return &cfg
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	c.Timeline.SetDefaults()
	c.Battery.SetDefaults()
	c.Repair.SetDefaults()
	c.Metrics.SetDefaults()
	c.Server.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Timeline.Validate(); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if err := c.Battery.Validate(); err != nil {
		return fmt.Errorf("battery: %w", err)
	}
	if err := c.Repair.Validate(); err != nil {
		return fmt.Errorf("repair: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
