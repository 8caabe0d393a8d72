package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every tunable of the CLI. Values come from (lowest to highest
// priority) built-in defaults, an optional hoyox.yaml in the working
// directory, and HOYOX_* environment variables (a .env file is loaded into
// the environment first).
type Config struct {
	APIBaseURL     string `mapstructure:"api_base_url"`
	AssetBaseURL   string `mapstructure:"asset_base_url"`
	UserAgent      string `mapstructure:"user_agent"`
	ImageUserAgent string `mapstructure:"image_user_agent"`
	RefDataDir     string `mapstructure:"refdata_dir"` // Empty means use the embedded tables
	Debug          bool   `mapstructure:"debug"`
}

const (
	envPrefix  = "HOYOX"
	configName = "hoyox"
)

var defaults = map[string]any{
	"api_base_url":     "https://enka.network/api/uid",
	"asset_base_url":   "https://enka.network/ui",
	"user_agent":       "HoYo-X/1.0",
	"image_user_agent": "Mozilla/5.0",
	"refdata_dir":      "",
	"debug":            false,
}

// Load reads .env (if present) and returns the merged configuration.
// configPaths are searched for hoyox.yaml; with none given the working
// directory is used.
func Load(configPaths ...string) (*Config, error) {
	// Load() doesn't fail the run when .env is missing, it only warns.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading it:", err)
	}
	return load(viper.New(), configPaths)
}

func load(v *viper.Viper, configPaths []string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{"."}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.AssetBaseURL = strings.TrimRight(cfg.AssetBaseURL, "/")
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api_base_url must not be empty")
	}
	return &cfg, nil
}
