package app

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/productioncity/salutation/internal/store"
	"github.com/productioncity/salutation/pkg/constants"
	"github.com/productioncity/salutation/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Storage
	Store string
	DSN   string

	// Reconciliation
	DefaultLocale    string
	OverrideStrategy string

	// HostModels lists the models the host application has installed. The
	// campaign recipient fields are only offered when it includes the
	// campaign model.
	HostModels []string

	// Server
	Addr           string
	PathPrefix     string
	MetricsEnabled bool
	ReadTimeout    time.Duration
	IdleTimeout    time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// StoreConfig returns the store selection.
func (c *Config) StoreConfig() store.Config {
	return store.Config{Driver: c.Store, DSN: c.DSN}
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (SALUTATION_ prefix)
// 3. .env files
// 4. Config file (~/.salutation.yaml or ./.salutation.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), os.Getenv("SALUTATION_CONFIG"))
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; a broken or explicitly
		// named one is not.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading "+configFileName(v, configFile), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Store: v.GetString("store"),
		DSN:   v.GetString("dsn"),

		DefaultLocale:    v.GetString("default_locale"),
		OverrideStrategy: v.GetString("override_strategy"),
		HostModels:       splitList(v.GetStringSlice("host_models")),

		Addr:           v.GetString("server.addr"),
		PathPrefix:     v.GetString("server.path_prefix"),
		MetricsEnabled: v.GetBool("server.metrics_enabled"),
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		IdleTimeout:    v.GetDuration("server.idle_timeout"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store", constants.DefaultStore)
	v.SetDefault("dsn", "")
	v.SetDefault("default_locale", constants.DefaultLocale)
	v.SetDefault("override_strategy", "differs")
	v.SetDefault("host_models", []string{})

	v.SetDefault("server.addr", constants.DefaultAddr)
	v.SetDefault("server.path_prefix", constants.DefaultPathPrefix)
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// The unprefixed LOG_* variables shared with other tools still apply.
	v.SetDefault("log_level", getEnvOrDefault("LOG_LEVEL", ""))
	v.SetDefault("log_format", getEnvOrDefault("LOG_FORMAT", "auto"))
	v.SetDefault("log_output", getEnvOrDefault("LOG_OUTPUT", "stderr"))
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides variables that are already set, so .env wins over .env.local.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// splitList flattens comma separated entries, the form host_models takes
// when it comes from the environment.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func configFileName(v *viper.Viper, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return constants.ConfigName + ".yaml"
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
