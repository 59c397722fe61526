package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
)

// Engine holds the external-engine settings shared by the cmd tools:
// where the jars live, which java binary to use and where the estimator
// workspace goes.
type Engine struct {
	Java      string `yaml:"java"`
	BoostJar  string `yaml:"boost_jar"`
	AUCJar    string `yaml:"auc_jar"`
	Workspace string `yaml:"workspace"`
	Debug     bool   `yaml:"debug"`
}

// Load reads an engine configuration from a YAML file and applies
// defaults.
func Load(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Engine
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Java == "" {
		cfg.Java = "java"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the jars needed by the engine are configured.
// An empty Workspace is fine; the estimator allocates a temporary one.
func (c *Engine) Validate() error {
	if c.BoostJar == "" {
		return fmt.Errorf("%w: boost_jar is required", internalerr.ErrInvalidConfig)
	}
	if c.AUCJar == "" {
		return fmt.Errorf("%w: auc_jar is required", internalerr.ErrInvalidConfig)
	}
	return nil
}
