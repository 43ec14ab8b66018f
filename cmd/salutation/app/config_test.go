package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// TestLoadConfig verifies defaults when nothing is configured.
func TestLoadConfig(t *testing.T) {
	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.Store != "sqlite" {
		t.Errorf("Store = %q, want sqlite", config.Store)
	}
	if config.DefaultLocale != "en_US" {
		t.Errorf("DefaultLocale = %q, want en_US", config.DefaultLocale)
	}
	if config.OverrideStrategy != "differs" {
		t.Errorf("OverrideStrategy = %q, want differs", config.OverrideStrategy)
	}
	if config.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", config.Addr)
	}
	if !config.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies SALUTATION_ prefixed variables.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("SALUTATION_STORE", "memory")
	t.Setenv("SALUTATION_DEFAULT_LOCALE", "ko_KR")
	t.Setenv("SALUTATION_OVERRIDE_STRATEGY", "any-edit")
	t.Setenv("SALUTATION_HOST_MODELS", "marketing.activity, marketing.campaign")
	t.Setenv("SALUTATION_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("SALUTATION_SERVER_READ_TIMEOUT", "3s")

	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.Store != "memory" {
		t.Errorf("Store = %q, want memory", config.Store)
	}
	if config.DefaultLocale != "ko_KR" {
		t.Errorf("DefaultLocale = %q, want ko_KR", config.DefaultLocale)
	}
	if config.OverrideStrategy != "any-edit" {
		t.Errorf("OverrideStrategy = %q, want any-edit", config.OverrideStrategy)
	}
	if len(config.HostModels) != 2 || config.HostModels[0] != "marketing.activity" {
		t.Errorf("HostModels = %v", config.HostModels)
	}
	if config.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q", config.Addr)
	}
	if config.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %v, want 3s", config.ReadTimeout)
	}
}

// TestConfig_LogEnvironment verifies the unprefixed LOG_* variables.
func TestConfig_LogEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", config.LogFormat)
	}
}

// TestConfig_File verifies an explicit YAML config file.
func TestConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salutation.yaml")
	content := `store: postgres
dsn: postgres://localhost/crm?sslmode=disable
default_locale: zh_CN
host_models:
  - marketing.activity
server:
  addr: ":9090"
  metrics_enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := loadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.Store != "postgres" {
		t.Errorf("Store = %q, want postgres", config.Store)
	}
	if config.DSN != "postgres://localhost/crm?sslmode=disable" {
		t.Errorf("DSN = %q", config.DSN)
	}
	if config.DefaultLocale != "zh_CN" {
		t.Errorf("DefaultLocale = %q", config.DefaultLocale)
	}
	if len(config.HostModels) != 1 {
		t.Errorf("HostModels = %v", config.HostModels)
	}
	if config.Addr != ":9090" {
		t.Errorf("Addr = %q", config.Addr)
	}
	if config.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

// TestConfig_MissingExplicitFile fails when --config names a missing file.
func TestConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Errorf("bool flags not applied: %+v", config)
	}
	if config.Format != "yaml" {
		t.Errorf("empty format flag should keep %q, got %q", "yaml", config.Format)
	}

	config.UpdateFromFlags(false, false, false, "json", "error")
	if config.Format != "json" || config.LogLevel != "error" {
		t.Errorf("string flags not applied: %+v", config)
	}
}

// TestConfigFlag verifies --config is found before flag parsing.
func TestConfigFlag(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"contacts", "list"}, ""},
		{[]string{"--config", "a.yaml", "contacts", "list"}, "a.yaml"},
		{[]string{"contacts", "list", "--config=b.yaml"}, "b.yaml"},
		{[]string{"split", "--", "--config=c.yaml"}, ""},
	}

	for _, tt := range tests {
		if got := configFlag(tt.args); got != tt.want {
			t.Errorf("configFlag(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
