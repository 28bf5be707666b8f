package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
)

// EnvPrefix prefixes every environment override, e.g. HUMANIZER_SERVER_PORT
const EnvPrefix = "HUMANIZER"

// Loader reads configuration from a file, the environment and built-in
// defaults, in that order of precedence.
type Loader struct {
	v      *viper.Viper
	logger *zap.Logger
}

// NewLoader creates a loader with its own viper instance
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{v: viper.New(), logger: logger}
}

// SetLogger replaces the logger used for reload messages, once the
// configuration has been used to build one.
func (l *Loader) SetLogger(logger *zap.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// ConfigFile returns the file the last Load read, or "" when only defaults
// and the environment applied.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	return NewLoader(nil).Load(configPath)
}

// Load reads the config file, if any, and returns the validated result
func (l *Loader) Load(configPath string) (*Config, error) {
	v := l.v

	if err := setDefaults(v); err != nil {
		return nil, fmt.Errorf("failed to register defaults: %w", err)
	}

	v.SetConfigName("humanizer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("$HOME/.humanizer/")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := l.decode()
	if err != nil {
		return nil, err
	}

	if used := v.ConfigFileUsed(); used != "" {
		l.logger.Debug("Configuration loaded", zap.String("file", used))
	}
	return config, nil
}

func (l *Loader) decode() (*Config, error) {
	config := &Config{}
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// setDefaults registers every default key with viper so environment
// overrides resolve even when no file sets them.
func setDefaults(v *viper.Viper) error {
	data, err := yaml.Marshal(GetDefaults())
	if err != nil {
		return err
	}
	var sections map[string]any
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return err
	}
	for key, value := range sections {
		v.SetDefault(key, value)
	}
	return nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if _, err := humanize.ParseStyle(config.Humanize.Style); err != nil {
		return err
	}
	if _, err := humanize.ParseVariability(config.Humanize.Variability); err != nil {
		return err
	}

	if config.Logging.Level != "debug" && config.Logging.Level != "info" && config.Logging.Level != "warn" && config.Logging.Level != "error" {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	if config.Logging.Output != "stderr" && config.Logging.Output != "stdout" {
		return fmt.Errorf("invalid log output: %s (must be stderr or stdout)", config.Logging.Output)
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("invalid rate limit: %v requests per second", config.RateLimit.RequestsPerSecond)
		}
		if config.RateLimit.Burst < 1 {
			return fmt.Errorf("invalid rate limit burst: %d", config.RateLimit.Burst)
		}
	}

	if config.Cache.Enabled && config.Cache.RedisURL == "" {
		return fmt.Errorf("cache enabled without redis_url")
	}

	if config.Batch.Workers < 1 {
		return fmt.Errorf("invalid batch workers: %d", config.Batch.Workers)
	}
	if config.Batch.BatchSize < 1 {
		return fmt.Errorf("invalid batch size: %d", config.Batch.BatchSize)
	}

	return nil
}

// Watch reloads the configuration whenever the file changes. Invalid
// revisions are logged and skipped.
func (l *Loader) Watch(callback func(*Config)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		newConfig, err := l.decode()
		if err != nil {
			l.logger.Warn("Ignoring config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		l.logger.Info("Configuration reloaded", zap.String("file", e.Name))
		callback(newConfig)
	})
	l.v.WatchConfig()
}
