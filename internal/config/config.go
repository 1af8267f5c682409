package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_recipes/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "GO_RECIPES"

type Config struct {
	Server ServerConfig
	Data   DataConfig
	Draft  DraftConfig
	Misc   MiscConfig
}

type ServerConfig struct {
	Port               int           `validate:"min=1,max=65535"`
	ReadTimeout        time.Duration `validate:"gt=0"`
	WriteTimeout       time.Duration `validate:"gt=0"`
	IdleTimeout        time.Duration `validate:"gt=0"`
	ShutDownTimeout    time.Duration `validate:"gt=0"`
	RequestTimeout     time.Duration `validate:"gt=0"`
	CORSAllowedOrigins string        `validate:"required"`
}

// DataConfig locates the recipe files.
// ExportDir plays the role of the shared "downloads" folder.
type DataConfig struct {
	RecipesDir  string `validate:"required"`
	ExportDir   string `validate:"required"`
	SeedOnStart bool
	Watch       bool
	// ResyncInterval re-lists the directory periodically; 0 disables it.
	ResyncInterval time.Duration `validate:"gte=0"`
}

type DraftConfig struct {
	// ConfirmWindow is how long a pending section/ingredient removal waits for confirmation.
	ConfirmWindow time.Duration `validate:"gt=0"`
}

type MiscConfig struct {
	LogLevel string
	GinMode  string `validate:"omitempty,oneof=debug release test"`
	// HoneybadgerAPIKey enables error reporting when set (HONEYBADGER_API_KEY).
	HoneybadgerAPIKey string
	// Environment is reported to Honeybadger (GO_ENV).
	Environment string
}

// LoadConfig reads config.yaml from GO_RECIPES_CONFIG_PATH (default ./config),
// applies defaults and environment overrides, and validates the result.
// Environment variables like GO_RECIPES_DATA_RECIPES_DIR override data.recipes_dir.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(getEnvOrDefault(envPrefix+"_CONFIG_PATH", "./config"))

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("misc.honeybadger_api_key", "HONEYBADGER_API_KEY", envPrefix+"_MISC_HONEYBADGER_API_KEY")
	_ = viper.BindEnv("misc.environment", "GO_ENV", envPrefix+"_MISC_ENVIRONMENT")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Info("No config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
		},
		Data: DataConfig{
			RecipesDir:  viper.GetString("data.recipes_dir"),
			ExportDir:   viper.GetString("data.export_dir"),
			SeedOnStart: viper.GetBool("data.seed_on_start"),
			Watch:       viper.GetBool("data.watch"),

			ResyncInterval: viper.GetDuration("data.resync_interval"),
		},
		Draft: DraftConfig{
			ConfirmWindow: viper.GetDuration("draft.confirm_window"),
		},
		Misc: MiscConfig{
			LogLevel: viper.GetString("misc.log_level"),
			GinMode:  viper.GetString("misc.gin_mode"),

			HoneybadgerAPIKey: viper.GetString("misc.honeybadger_api_key"),
			Environment:       viper.GetString("misc.environment"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("server.request_timeout", 2*time.Second)
	viper.SetDefault("server.cors_allowed_origins", "*")

	viper.SetDefault("data.recipes_dir", "./data/recipes")
	viper.SetDefault("data.export_dir", "./data/downloads")
	viper.SetDefault("data.seed_on_start", true)
	viper.SetDefault("data.watch", true)
	viper.SetDefault("data.resync_interval", time.Minute)

	viper.SetDefault("draft.confirm_window", 3*time.Second)

	viper.SetDefault("misc.log_level", "info")
	viper.SetDefault("misc.gin_mode", "release")
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if filepath.Clean(c.Data.RecipesDir) == filepath.Clean(c.Data.ExportDir) {
		return errors.New("data.export_dir must differ from data.recipes_dir")
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvOrViperPort prefers a bare env var (PORT) over the viper key.
func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
