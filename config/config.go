// Copyright © 2021 Io FinNet Group, Inc.

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	defaultListen          = "127.0.0.1:5000"
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultLogLevel        = "info"
	defaultLanguage        = "en"
)

var (
	logLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}
	languages = []string{"en", "de"}
)

// Config holds the service settings. Engine bounds are constants of package dh and
// are deliberately not configurable.
type Config struct {
	Listen          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	// Language is the fallback for error messages when a request has no usable Accept-Language.
	Language string
}

func Default() *Config {
	return &Config{
		Listen:          defaultListen,
		ReadTimeout:     defaultReadTimeout,
		WriteTimeout:    defaultWriteTimeout,
		ShutdownTimeout: defaultShutdownTimeout,
		LogLevel:        defaultLogLevel,
		Language:        defaultLanguage,
	}
}

// Load reads path as INI or YAML depending on its extension and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ini", ".conf", ".cfg":
		err = cfg.loadINI(path)
	case ".yaml", ".yml":
		err = cfg.loadYAML(path)
	default:
		return nil, errors.Errorf("config %s: unsupported extension %q (want .ini or .yaml)", path, ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// loadINI reads the [server] and [log] sections; missing keys keep their defaults.
// Every unparsable duration is reported.
func (cfg *Config) loadINI(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return err
	}
	server := f.Section("server")
	cfg.Listen = server.Key("listen").MustString(cfg.Listen)
	cfg.Language = server.Key("language").MustString(cfg.Language)
	cfg.LogLevel = f.Section("log").Key("level").MustString(cfg.LogLevel)

	var result error
	for _, d := range []struct {
		name string
		dst  *time.Duration
	}{
		{"read_timeout", &cfg.ReadTimeout},
		{"write_timeout", &cfg.WriteTimeout},
		{"shutdown_timeout", &cfg.ShutdownTimeout},
	} {
		if !server.HasKey(d.name) {
			continue
		}
		v, err := server.Key(d.name).Duration()
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "server.%s", d.name))
			continue
		}
		*d.dst = v
	}
	return result
}

type yamlConfig struct {
	Server struct {
		Listen          string `yaml:"listen"`
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
		Language        string `yaml:"language"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func (cfg *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var dto yamlConfig
	if err = yaml.Unmarshal(data, &dto); err != nil {
		return err
	}
	if dto.Server.Listen != "" {
		cfg.Listen = dto.Server.Listen
	}
	if dto.Server.Language != "" {
		cfg.Language = dto.Server.Language
	}
	if dto.Log.Level != "" {
		cfg.LogLevel = dto.Log.Level
	}
	var result error
	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"read_timeout", dto.Server.ReadTimeout, &cfg.ReadTimeout},
		{"write_timeout", dto.Server.WriteTimeout, &cfg.WriteTimeout},
		{"shutdown_timeout", dto.Server.ShutdownTimeout, &cfg.ShutdownTimeout},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "server.%s", d.name))
			continue
		}
		*d.dst = v
	}
	return result
}

// Validate reports every problem at once.
func (cfg *Config) Validate() error {
	var result error
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "listen address %q", cfg.Listen))
	}
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"read_timeout", cfg.ReadTimeout},
		{"write_timeout", cfg.WriteTimeout},
		{"shutdown_timeout", cfg.ShutdownTimeout},
	} {
		if d.value <= 0 {
			result = multierror.Append(result, fmt.Errorf("%s must be positive, got %s", d.name, d.value))
		}
	}
	if !contains(logLevels, cfg.LogLevel) {
		result = multierror.Append(result, fmt.Errorf("log level %q is not one of %v", cfg.LogLevel, logLevels))
	}
	if !contains(languages, cfg.Language) {
		result = multierror.Append(result, fmt.Errorf("language %q is not one of %v", cfg.Language, languages))
	}
	return result
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
