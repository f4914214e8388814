package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	Headless        bool   `mapstructure:"HEADLESS"`
	UserAgent       string `mapstructure:"USER_AGENT"`
	Locale          string `mapstructure:"LOCALE"`
	PageLoadTimeout int    `mapstructure:"PAGE_LOAD_TIMEOUT"`
	PanelTimeout    int    `mapstructure:"PANEL_TIMEOUT"`
	StepTimeout     int    `mapstructure:"STEP_TIMEOUT"`
	OutputDir       string `mapstructure:"OUTPUT_DIR"`
	OutputFile      string `mapstructure:"OUTPUT_FILE"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables in production.
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("HEADLESS", true)
	viper.SetDefault("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	viper.SetDefault("LOCALE", "es-ES")
	viper.SetDefault("PAGE_LOAD_TIMEOUT", 90) // in seconds
	viper.SetDefault("PANEL_TIMEOUT", 20)
	viper.SetDefault("STEP_TIMEOUT", 10)
	viper.SetDefault("OUTPUT_DIR", "output")
	viper.SetDefault("OUTPUT_FILE", "reviews.csv")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
