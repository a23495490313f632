package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format uint8

const (
	// TOML is the default format.
	TOML Format = iota
	// YAML is accepted for .yaml and .yml files.
	YAML
)

// String implements fmt.Stringer.
func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// ErrUnknownFormat reports a file extension with no decoder.
var ErrUnknownFormat = errors.New("config: unknown file format")

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads, decodes and validates the file at path.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	cfg.Viewports = nil

	if err := decode(bytes.NewReader(data), format, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Viewports == nil {
		cfg.Viewports = defaultViewports()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, format Format, cfg *Config) error {
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config: yaml: %w", err)
		}
	default:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
			return fmt.Errorf("config: toml: %w", err)
		}
	}
	return nil
}

// Encode writes cfg in the given format.
func Encode(w io.Writer, cfg Config, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("config: yaml: %w", err)
		}
		return enc.Close()
	default:
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return fmt.Errorf("config: toml: %w", err)
		}
		return nil
	}
}
