package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = ".symdiff.yaml"
	configEnvVar      = "SYMDIFF_CONFIG"

	DomainReal    = "real"
	DomainComplex = "complex"
)

// Config is read from a YAML file. Every field is optional.
type Config struct {
	Domain   string            `yaml:"domain"`
	MaxDepth int               `yaml:"max_depth"`
	LogLevel string            `yaml:"log_level"`
	Color    *bool             `yaml:"color"`
	Bindings map[string]string `yaml:"bindings"`
}

func DefaultConfig() Config {
	return Config{
		Domain:   DomainReal,
		LogLevel: "warn",
		Bindings: map[string]string{},
	}
}

// LoadConfig reads path, or $SYMDIFF_CONFIG, or DefaultConfigFile when it
// exists. With none of them the defaults are returned.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = env.Str(configEnvVar)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigFile
	}

	config := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}
	if config.Bindings == nil {
		config.Bindings = map[string]string{}
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.Domain {
	case DomainReal, DomainComplex:
	default:
		return fmt.Errorf("config: unknown domain %q (want %q or %q)", c.Domain, DomainReal, DomainComplex)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth must not be negative")
	}
	return nil
}
