// Package config loads finder configuration from YAML. It covers the
// locations of the finder's external collaborators; the strategy order
// itself is fixed and not configurable.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/provider-finder/pkg/finder"
	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

// Config describes how a Finder locates its collaborators.
type Config struct {
	// InstallHome pins the runtime installation root. Empty means derive
	// it from the runtime.home property or the executable location.
	InstallHome string `yaml:"install_home,omitempty"`

	// ConfigName overrides the installation file base name.
	ConfigName string `yaml:"config_name,omitempty"`

	// Properties are process properties that take precedence over the
	// environment. Useful for pinning deployment configuration in a file.
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a Config from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.ConfigName, `/\`) {
		return fmt.Errorf("config: config_name must be a bare file name, got %q", c.ConfigName)
	}
	for key := range c.Properties {
		if key == "" {
			return fmt.Errorf("config: empty property key")
		}
	}
	return nil
}

// Options converts the configuration into finder options.
func (c *Config) Options() []finder.Option {
	var opts []finder.Option
	if c.InstallHome != "" {
		opts = append(opts, finder.WithInstallHome(c.InstallHome))
	}
	if c.ConfigName != "" {
		opts = append(opts, finder.WithConfigName(c.ConfigName))
	}
	if len(c.Properties) > 0 {
		opts = append(opts, finder.WithPropertyReader(layeredReader{
			first:  finder.StaticPropertyReader(c.Properties),
			second: finder.EnvPropertyReader{},
		}))
	}
	return opts
}

// NewFinder builds a Finder from the configuration plus extra options.
// Extra options are applied last, so they win over configured values.
func (c *Config) NewFinder(extra ...finder.Option) *finder.Finder {
	return finder.New(append(c.Options(), extra...)...)
}

// layeredReader consults the configured properties before the environment.
type layeredReader struct {
	first  types.PropertyReader
	second types.PropertyReader
}

func (r layeredReader) LookupProperty(key string) (string, bool, error) {
	if v, ok, err := r.first.LookupProperty(key); err != nil || ok {
		return v, ok, err
	}
	return r.second.LookupProperty(key)
}
