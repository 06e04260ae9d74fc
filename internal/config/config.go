package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the monitor's own settings.
type AppConfig struct {
	MonitorIntervalSeconds int    `mapstructure:"monitor_interval_in_seconds"`
	DockerSocket           string `mapstructure:"docker_socket"`
	WebhookURL             string `mapstructure:"status_change_webhook_url"`
	MonitorLabel           string `mapstructure:"coolify_monitor_label"`
	ProjectName            string `mapstructure:"coolify_project_name"`
	EnvironmentName        string `mapstructure:"coolify_environment_name"`
}

// Interval returns the monitor loop period.
func (c *AppConfig) Interval() time.Duration {
	return time.Duration(c.MonitorIntervalSeconds) * time.Second
}

// CallTimeout bounds the inventory snapshot call and each webhook delivery.
// It is always strictly below the interval so one slow call cannot stall
// the next cycle.
func (c *AppConfig) CallTimeout() time.Duration {
	timeout := c.Interval() - time.Second
	if timeout <= 0 {
		timeout = c.Interval() / 2
	}
	return timeout
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the top-level configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logging LoggingConfig `mapstructure:"log"`
}

// InitConfig performs the initial configuration: setting defaults, binding
// environment variables, and reading the optional config file. configFile
// overrides the default config.yaml lookup when non-empty.
func InitConfig(configFile string) error {
	// Set defaults for each sub-configuration.
	viper.SetDefault("app.monitor_interval_in_seconds", 5)
	viper.SetDefault("app.coolify_environment_name", "production")
	viper.SetDefault("log.level", "INFO")

	// The environment variable names are a deployment contract, so each key
	// is bound explicitly instead of being derived from the viper key.
	bindings := map[string]string{
		"app.monitor_interval_in_seconds": "MONITOR_INTERVAL_IN_SECONDS",
		"app.docker_socket":               "DOCKER_SOCKET",
		"app.status_change_webhook_url":   "STATUS_CHANGE_WEBHOOK_URL",
		"app.coolify_monitor_label":       "COOLIFY_MONITOR_LABEL",
		"app.coolify_project_name":        "COOLIFY_PROJECT_NAME",
		"app.coolify_environment_name":    "COOLIFY_ENVIRONMENT_NAME",
		"log.level":                       "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}

	// Specify the config file details.
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config") // Looks for config.yaml
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".") // current directory
	}

	// Read the config file if available.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	return nil
}

// Load unmarshals the configuration into the Config struct and validates it.
// Precedence per value: explicitly set flag, then environment variable, then
// config file, then default.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.App.MonitorIntervalSeconds < 1 {
		return fmt.Errorf("monitor interval must be at least 1 second, got %d", c.App.MonitorIntervalSeconds)
	}
	required := []struct {
		value string
		env   string
	}{
		{c.App.DockerSocket, "DOCKER_SOCKET"},
		{c.App.WebhookURL, "STATUS_CHANGE_WEBHOOK_URL"},
		{c.App.MonitorLabel, "COOLIFY_MONITOR_LABEL"},
		{c.App.ProjectName, "COOLIFY_PROJECT_NAME"},
		{c.App.EnvironmentName, "COOLIFY_ENVIRONMENT_NAME"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.env)
		}
	}
	u, err := url.Parse(c.App.WebhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook url %q: %w", c.App.WebhookURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("webhook url %q must be absolute", c.App.WebhookURL)
	}
	return nil
}
