package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/mvreport"
	"github.com/fwojciec/mvreport/fs"
	"github.com/fwojciec/mvreport/httpapi"
	"github.com/spf13/viper"
)

// Config is the merged configuration from flags, environment and config file.
type Config struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Theme    string        `mapstructure:"theme"`
	LogFile  string        `mapstructure:"log_file"`
	Options  OptionsConfig `mapstructure:"options"`
}

// OptionsConfig holds the default analysis options.
type OptionsConfig struct {
	Chords      bool `mapstructure:"chords"`
	Instruments bool `mapstructure:"instruments"`
	Structure   bool `mapstructure:"structure"`
	Tablature   bool `mapstructure:"tablature"`
}

// Analysis converts the configured options to request options.
func (o OptionsConfig) Analysis() mvreport.Options {
	return mvreport.Options{
		ExtractChords:     o.Chords,
		DetectInstruments: o.Instruments,
		AnalyzeStructure:  o.Structure,
		ExtractTablature:  o.Tablature,
	}
}

// NewViper returns a viper instance with defaults and MVREPORT_* environment
// variables applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("endpoint", httpapi.DefaultEndpoint)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("theme", "dark")
	v.SetDefault("log_file", "")
	v.SetDefault("options.chords", true)
	v.SetDefault("options.instruments", true)
	v.SetDefault("options.structure", true)
	v.SetDefault("options.tablature", true)

	v.SetEnvPrefix("MVREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the config file into v and decodes the result. An empty
// path searches the default config directory, where a missing file is not
// an error.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(fs.DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("invalid timeout %s: must not be negative", cfg.Timeout)
	}
	return &cfg, nil
}

// newLogger returns a text logger writing to path, or a discarding logger
// when path is empty. The terminal belongs to the UI, so logs never go there.
func newLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}
