package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LIFECLOCK_SERVER_PORT.
const EnvPrefix = "LIFECLOCK"

// Config holds all lifeclock configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	User   UserConfig   `mapstructure:"user"`
	Engine EngineConfig `mapstructure:"engine"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Bind string `mapstructure:"bind"`
	Port int    `mapstructure:"port"`
}

// UserConfig seeds the single demo profile and its ledger.
type UserConfig struct {
	Username       string  `mapstructure:"username"`
	Age            float64 `mapstructure:"age"`
	Height         float64 `mapstructure:"height"` // cm
	Weight         float64 `mapstructure:"weight"` // kg
	ActivityLevel  string  `mapstructure:"activity_level"`
	Gender         string  `mapstructure:"gender"`
	LifeExpectancy float64 `mapstructure:"life_expectancy"` // years
}

type EngineConfig struct {
	Seed uint64 `mapstructure:"seed"` // 0 = seed from the clock
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 3000,
		},
		User: UserConfig{
			Username:       "demo",
			Age:            30,
			Height:         170,
			Weight:         70,
			ActivityLevel:  "moderate",
			Gender:         "other",
			LifeExpectancy: 78.5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the default config file path: ~/.lifeclock/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".lifeclock", "config.toml"), nil
}

// Load layers defaults, the TOML file at path, and LIFECLOCK_* environment
// variables, in increasing precedence. An empty path means DefaultPath; a
// missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Config{}, err
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.bind", d.Server.Bind)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("user.username", d.User.Username)
	v.SetDefault("user.age", d.User.Age)
	v.SetDefault("user.height", d.User.Height)
	v.SetDefault("user.weight", d.User.Weight)
	v.SetDefault("user.activity_level", d.User.ActivityLevel)
	v.SetDefault("user.gender", d.User.Gender)
	v.SetDefault("user.life_expectancy", d.User.LifeExpectancy)
	v.SetDefault("engine.seed", d.Engine.Seed)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.User.Age < 0 {
		return fmt.Errorf("user.age must not be negative")
	}
	if c.User.LifeExpectancy <= 0 {
		return fmt.Errorf("user.life_expectancy must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
