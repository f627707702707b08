package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name, so that
// server.port is read from EMPLOYEE_SERVER_PORT.
const EnvPrefix = "EMPLOYEE"

// legacyEnv maps config keys to the unprefixed variable names older
// deployments export. The prefixed name wins when both are set.
var legacyEnv = map[string]string{
	"server.port":      "PORT",
	"database.url":     "MONGO_URI",
	"auth.jwt_secret":  "JWT_SECRET",
	"server.log_level": "LOG_LEVEL",
}

// Load configuration from a .env file, an optional config.yaml and
// environment variables, in increasing order of precedence.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.name", "employee_directory")
	v.SetDefault("database.connect_timeout_seconds", 5)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("cors.allowed_origins", []string{})
}

// bindEnv registers keys without defaults (which AutomaticEnv alone would
// not surface to Unmarshal) together with their legacy aliases.
func bindEnv(v *viper.Viper) error {
	keys := []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
	}
	for _, key := range keys {
		names := []string{key, envName(key)}
		if legacy, ok := legacyEnv[key]; ok {
			names = append(names, legacy)
		}
		if err := v.BindEnv(names...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
