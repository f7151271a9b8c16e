package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Messenger platform
	Messenger MessengerConfig

	// NLU backend
	Wit WitConfig

	// Weather data source
	Weather WeatherConfig

	// Dialogue engine
	Dialogue DialogueConfig

	// Webhook security
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type MessengerConfig struct {
	PageAccessToken string
	AppSecret       string
	VerifyToken     string
}

type WitConfig struct {
	AccessToken string
}

type WeatherConfig struct {
	APIKey string
}

type DialogueConfig struct {
	MaxSteps int
}

type WebhookConfig struct {
	// AllowUnsigned permits requests without a signature header.
	// Local testing only.
	AllowUnsigned bool
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Messenger platform
	cfg.Messenger.PageAccessToken = viper.GetString("messenger.page_access_token")
	cfg.Messenger.AppSecret = viper.GetString("messenger.app_secret")
	cfg.Messenger.VerifyToken = viper.GetString("messenger.verify_token")
	if token := viper.GetString("messenger_page_access_token"); token != "" {
		cfg.Messenger.PageAccessToken = token
	}
	if secret := viper.GetString("messenger_app_secret"); secret != "" {
		cfg.Messenger.AppSecret = secret
	}
	if token := viper.GetString("messenger_verify_token"); token != "" {
		cfg.Messenger.VerifyToken = token
	}

	// Wit NLU
	cfg.Wit.AccessToken = viper.GetString("wit.access_token")
	if token := viper.GetString("wit_access_token"); token != "" {
		cfg.Wit.AccessToken = token
	}

	// Weather
	cfg.Weather.APIKey = viper.GetString("weather.api_key")
	if key := viper.GetString("weather_api_key"); key != "" {
		cfg.Weather.APIKey = key
	}

	// Dialogue engine
	cfg.Dialogue.MaxSteps = viper.GetInt("dialogue.max_steps")

	// Webhook security
	cfg.Webhook.AllowUnsigned = viper.GetBool("webhook.allow_unsigned")

	return cfg, nil
}

// Validate fails fast when a required secret is absent. The process must
// not accept traffic without them.
func (cfg *Config) Validate() error {
	if cfg.Messenger.PageAccessToken == "" {
		return fmt.Errorf("missing messenger.page_access_token")
	}
	if cfg.Messenger.AppSecret == "" {
		return fmt.Errorf("missing messenger.app_secret")
	}
	if cfg.Messenger.VerifyToken == "" {
		return fmt.Errorf("missing messenger.verify_token")
	}
	if cfg.Wit.AccessToken == "" {
		return fmt.Errorf("missing wit.access_token")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8445)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("dialogue.max_steps", 10)
	viper.SetDefault("webhook.allow_unsigned", false)
}
