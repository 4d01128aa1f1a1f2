package config

import (
	"fmt"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Config is the full docverify configuration.
type Config struct {
	// Core is the path to the validation core executable.
	Core string `yaml:"core" validate:"required"`
	// Timeout per validation run, as a Go duration string.
	Timeout string `yaml:"timeout" validate:"omitempty,duration"`
	// Hostname is used in notification templates; filled from os.Hostname
	// when empty.
	Hostname string `yaml:"hostname"`
	// Template is the default notification message template.
	Template string `yaml:"template"`
	// Services maps a service name to its delivery endpoint.
	Services map[string]Service `yaml:"services" validate:"dive"`
	// Notify lists where validation outcomes are delivered.
	Notify []NotifyTarget `yaml:"notify" validate:"dive"`
	// Watch configures the directory-watching mode.
	Watch Watch `yaml:"watch"`
}

type Service struct {
	URL    string            `yaml:"url" validate:"required"`
	Params map[string]string `yaml:"params"`
}

// Watch configures the watch command: which directories to observe, an
// optional cron schedule for full sweeps, and which outcomes get reported.
type Watch struct {
	Dirs     []string `yaml:"dirs"`
	Schedule string   `yaml:"schedule"`
	// On filters notifications: "issues" (default), "error", or "always".
	On string `yaml:"on" validate:"omitempty,oneof=issues error always"`
}

// NotifyTarget handles a plain service name string or an object with
// overrides.
type NotifyTarget struct {
	Service  string            `yaml:"service" validate:"required"`
	Template string            `yaml:"template"`
	Params   map[string]string `yaml:"params"`
}

func (n *NotifyTarget) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		n.Service = str
		return nil
	}

	type notifyAlias NotifyTarget
	var obj notifyAlias
	if err := unmarshal(&obj); err != nil {
		return fmt.Errorf("notify: must be a service name string or an object with service/template/params")
	}
	*n = NotifyTarget(obj)
	return nil
}

// TimeoutDuration returns the parsed timeout, or def for an empty field.
func (c *Config) TimeoutDuration(def time.Duration) time.Duration {
	if c.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return def
	}
	return d
}

// Default returns a config usable without a config file; the core path still
// has to come from a flag.
func Default() *Config {
	return &Config{Timeout: "30s", Watch: Watch{On: "issues"}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})
	return v
}

// Load reads, env-expands, parses, and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the tag-level constraints plus the cross-field ones the
// tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, t := range c.Notify {
		if _, ok := c.Services[t.Service]; !ok {
			return fmt.Errorf("invalid config: notify target references unknown service %q", t.Service)
		}
		if t.Template == "" && c.Template == "" {
			return fmt.Errorf("invalid config: notify target %q needs a template (top-level or per-target)", t.Service)
		}
	}

	return nil
}
