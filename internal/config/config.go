package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/statline/statline/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Container segment defaults.
const (
	DefaultContainerFormat = `[$symbol \[$name\]]($style) `
	DefaultContainerSymbol = "⬢"
	DefaultContainerStyle  = "red bold dimmed"
)

// Config is the root structure parsed from YAML.
type Config struct {
	LogLevel  string    `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFile   string    `yaml:"log_file"`
	Container Container `yaml:"container"`
}

// Container configures the container segment. An immutable snapshot for the
// duration of one render.
type Container struct {
	Disabled         bool   `yaml:"disabled"`
	Format           string `yaml:"format"`
	Symbol           string `yaml:"symbol"`
	Style            string `yaml:"style"`
	UseContainerName bool   `yaml:"use_container_name"`
}

// Default returns the built-in configuration used when no config file is
// present.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Container: Container{
			Format: DefaultContainerFormat,
			Symbol: DefaultContainerSymbol,
			Style:  DefaultContainerStyle,
		},
	}
}

// Load reads configuration from path. When path is empty it searches the
// current working directory for statline.yml then statline.yaml; if neither
// exists the defaults are returned, since a prompt renderer must work
// unconfigured. An explicit path that cannot be read is an error.
func Load(path string) (Config, error) {
	if path == "" {
		found, ok := discover()
		if !ok {
			return Default(), nil
		}
		path = found
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, apperr.Wrap("config.Load", apperr.InvalidInput, err, "abs path")
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return Config{}, apperr.Wrap("config.Load", apperr.NotFound, err, "read config %s", abs)
	}
	return parse(b)
}

func discover() (string, bool) {
	for _, name := range []string{"statline.yml", "statline.yaml"} {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
	}
	return "", false
}

func parse(b []byte) (Config, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return Default(), nil
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b), yaml.Validator(validate), yaml.Strict())
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, apperr.New("config.Load", apperr.InvalidInput, "parse yaml: %s", yaml.FormatError(err, true, true))
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills fields the YAML left empty. An explicitly empty format
// or symbol is indistinguishable from an omitted one and gets the default.
func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Container.Format == "" {
		c.Container.Format = d.Container.Format
	}
	if c.Container.Symbol == "" {
		c.Container.Symbol = d.Container.Symbol
	}
	if c.Container.Style == "" {
		c.Container.Style = d.Container.Style
	}
}
