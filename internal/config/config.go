package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"address-book/internal/logging"
	"address-book/pkg/fsutils"
)

type Config struct {
	DataFile   string    `yaml:"data_file" mapstructure:"data_file"`
	MaxRetries int       `yaml:"max_retries" mapstructure:"max_retries"`
	Log        LogConfig `yaml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file,omitempty" mapstructure:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		DataFile:   "addressbook.json",
		MaxRetries: 3,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoggingOptions converts the log section for logging.New.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}

// ErrConfigExists is returned by WriteDefault when the target file is
// already present.
var ErrConfigExists = errors.New("config file already exists")

// DefaultPath is where WriteDefault puts a starter config. It fails when
// neither XDG_CONFIG_HOME nor the home directory is known.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "addressbook", "addressbook.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot locate default config path: %w", err)
	}
	return filepath.Join(home, ".config", "addressbook", "addressbook.yaml"), nil
}

// Load reads configuration from defaults, an optional addressbook.yaml and
// ADDRESSBOOK_* environment variables. An explicit file, when given, must
// exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("data_file", def.DataFile)
	v.SetDefault("max_retries", def.MaxRetries)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file", def.Log.File)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("addressbook")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "addressbook"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "addressbook"))
		}
	}

	v.SetEnvPrefix("ADDRESSBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
		// No config file; defaults and environment apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("config: data_file is required")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("config: max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: log.format %q must be console or json", c.Log.Format)
	}
	return nil
}

// WriteDefault writes the default configuration as YAML to path. An existing
// file is never overwritten.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}
	if fsutils.FileExists(path) {
		return fmt.Errorf("config: %w: %s", ErrConfigExists, path)
	}
	if err := fsutils.CreateDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// O_EXCL still guards against a file created since the check.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return f.Close()
}
