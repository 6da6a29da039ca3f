package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/balkashynov/devtrack/internal/backing"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Store   StoreConfig   `mapstructure:"store"`
}

type StorageConfig struct {
	Driver string      `mapstructure:"driver" validate:"oneof=memory file sqlite redis"`
	Dir    string      `mapstructure:"dir" validate:"required_if=Driver file,required_if=Driver sqlite"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	Prefix   string `mapstructure:"prefix"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Output string `mapstructure:"output" validate:"required"`
}

type StoreConfig struct {
	SeedCount      int    `mapstructure:"seed_count" validate:"min=0"`
	UserID         string `mapstructure:"user_id" validate:"required"`
	StrictTimeLogs bool   `mapstructure:"strict_time_logs"`
}

// Backing converts the storage section into a backend config
func (s StorageConfig) Backing() backing.Config {
	return backing.Config{
		Driver: s.Driver,
		Dir:    s.Dir,
		Redis: backing.RedisConfig{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
			Prefix:   s.Redis.Prefix,
		},
	}
}

// Load reads configuration from file and environment variables.
// path names an explicit config file; when empty, config.yaml is looked up
// in ~/.devtrack and the working directory, and may be absent.
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	// Load .env file if it exists; real environment variables win
	_ = godotenv.Load()

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".devtrack"))
		}
		v.AddConfigPath(".")
	}

	// Set environment variable prefix and replacer
	v.SetEnvPrefix("DEVTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.normalize()
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// normalize lowercases the enum-like values, matching how the logger and
// backing parse them
func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Logger.Level = strings.ToLower(strings.TrimSpace(c.Logger.Level))
	c.Logger.Format = strings.ToLower(strings.TrimSpace(c.Logger.Format))
}

// validate checks every section, reporting fields by their config key
func validate(c *Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})

	err := v.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Namespace is Config.storage.driver; drop the type name
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s)", key, fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Storage defaults
	v.SetDefault("storage.driver", backing.DriverFile)
	v.SetDefault("storage.dir", "~/.devtrack")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "devtrack:")

	// Logger defaults
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stderr")

	// Store defaults
	v.SetDefault("store.seed_count", 10)
	v.SetDefault("store.user_id", "dev_user")
	v.SetDefault("store.strict_time_logs", false)
}
