// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package config loads pitchpolt settings from a YAML file and command-line
// flags. Flags that were set explicitly override the file; flag defaults fill
// whatever the file leaves out.
//
// The catalog account and the catalog path used by play are fixed at build
// time and are not configuration.
package config

import (
	"errors"
	"io/fs"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/pitchpolt/pitchpolt/internal/codec"
	"github.com/pitchpolt/pitchpolt/internal/logging"
	"github.com/pitchpolt/pitchpolt/internal/xdg"
)

// Config keys, shared by the YAML file and the flag names.
const (
	KeyCatalog     = "catalog"
	KeyLogFormat   = "log-format"
	KeyMaxBytes    = "max-bytes"
	KeyMetricsFile = "metrics-file"
)

// Config holds the resolved settings.
type Config struct {
	Catalog     string `koanf:"catalog"`
	LogFormat   string `koanf:"log-format"`
	MaxBytes    uint64 `koanf:"max-bytes"`
	MetricsFile string `koanf:"metrics-file"`
}

// RegisterFlags adds the config flags with their defaults to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(KeyCatalog, "", "catalog file for the catalog tools (default: XDG_DATA_HOME/pitchpolt/catalog.bin)")
	flags.String(KeyLogFormat, logging.FormatJSON, "log format (json or text)")
	flags.Uint64(KeyMaxBytes, codec.DefaultMaxBytes, "largest decoded array size in bytes")
	flags.String(KeyMetricsFile, "", "write Prometheus metrics to this file on exit (empty = disabled)")
}

// Load reads path (or the XDG default when path is empty) and overlays
// flags. A missing default file is not an error; a missing
// explicit file is.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		if def, err := xdg.ConfigFile(); err == nil {
			path = def
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
			}
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.LogFormat == "" {
		c.LogFormat = logging.FormatJSON
	}
	if c.MaxBytes == 0 {
		c.MaxBytes = codec.DefaultMaxBytes
	}
	if c.Catalog == "" {
		path, err := xdg.CatalogFile()
		if err != nil {
			return oops.Code("CONFIG_INVALID").With("key", KeyCatalog).Wrap(err)
		}
		c.Catalog = path
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !logging.ValidFormat(c.LogFormat) {
		return oops.Code("CONFIG_INVALID").
			With("key", KeyLogFormat).
			Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	return nil
}

// Limits returns the decoder limits for c.
func (c *Config) Limits() codec.Limits {
	return codec.Limits{MaxBytes: c.MaxBytes}
}
