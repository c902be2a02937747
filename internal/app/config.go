package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/corey/foilview/internal/domain/airfoil"
	"github.com/corey/foilview/internal/ports"
)

// envPrefix prefixes every environment override.
const envPrefix = "FOILVIEW_"

// Config is the resolved runtime configuration.
// Precedence: command-line flags > environment > config.yaml > defaults.
type Config struct {
	ports.Figure `yaml:",inline"`

	Format   string `yaml:"format"`
	Strict   bool   `yaml:"strict"`
	LogLevel string `yaml:"log_level"`
	Port     int    `yaml:"port"`
	NoCache  bool   `yaml:"no_cache"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Figure:   ports.DefaultFigure(),
		Format:   airfoil.FormatAuto.String(),
		LogLevel: "warn",
	}
}

// LoadConfig resolves configuration for the project at p.
// Missing config.yaml and .env files are not errors. The result is not
// validated: callers overlay command-line flags first, then call Validate.
func LoadConfig(p *Paths) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(p.Config)
	switch {
	case err == nil:
		if err := decodeYAML(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", p.Config, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", p.Config, err)
	}

	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(p.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", p.EnvFile, err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overlays FOILVIEW_* variables onto cfg.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	float := func(key string, dst *float64) error {
		v, ok := lookup(envPrefix + key)
		if !ok {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = f
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(envPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = n
		return nil
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(envPrefix + key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = b
		return nil
	}

	str("LINE_COLOR", &cfg.LineColor)
	str("FORMAT", &cfg.Format)
	str("LOG_LEVEL", &cfg.LogLevel)
	return errors.Join(
		float("HEIGHT_MM", &cfg.HeightMM),
		float("WIDTH_MM", &cfg.WidthMM),
		integer("DPI", &cfg.DPI),
		integer("PORT", &cfg.Port),
		boolean("STRICT", &cfg.Strict),
		boolean("NO_CACHE", &cfg.NoCache),
	)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := airfoil.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !(c.HeightMM > 0) || !(c.WidthMM > 0) {
		errs = append(errs, fmt.Errorf("figure size must be positive, got %gx%g mm", c.WidthMM, c.HeightMM))
	}
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %d", c.DPI))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	return errors.Join(errs...)
}

// DecodeFormat returns the configured format. Call Validate first.
func (c Config) DecodeFormat() airfoil.Format {
	f, err := airfoil.ParseFormat(c.Format)
	if err != nil {
		return airfoil.FormatAuto
	}
	return f
}

// YAML renders the config in config.yaml form.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
