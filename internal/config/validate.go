package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validatePrincipals(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if len(c.Pipeline.Steps) == 0 {
		return errors.New("pipeline.steps must list at least one step")
	}
	seen := make(map[string]struct{}, len(c.Pipeline.Steps))
	for _, name := range c.Pipeline.Steps {
		if strings.TrimSpace(name) == "" {
			return errors.New("pipeline.steps must not contain empty names")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("pipeline.steps lists %q twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func (c *Config) validatePrincipals() error {
	if strings.TrimSpace(c.Principals.Default) == "" {
		return errors.New("principals.default must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
