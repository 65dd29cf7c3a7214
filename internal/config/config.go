package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`
	Environment string `validate:"required"`

	BannerFile     string        `validate:"required"`
	ItemDataFile   string        // optional overlay on the built-in item definitions
	ReloadInterval time.Duration `validate:"gte=0"` // 0 disables the file watcher

	RedisAddr string // empty keeps pity in memory only

	DedupeTTL  time.Duration `validate:"gt=0"`
	DedupeSize int           `validate:"gt=0"`

	// Demo players created on first request.
	StartingFates  int `validate:"gte=0"`
	WeaponCapacity int `validate:"gte=0"`
}

var validate = validator.New()

// Load reads .env if present, then the environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		BannerFile:     getEnv("BANNER_FILE", DefaultBannerFile),
		ItemDataFile:   getEnv("ITEM_DATA_FILE", ""),
		ReloadInterval: getEnvAsDuration("RELOAD_INTERVAL", DefaultReloadInterval),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		DedupeTTL:      getEnvAsDuration("DEDUPE_TTL", DefaultDedupeTTL),
		DedupeSize:     getEnvAsInt("DEDUPE_SIZE", DefaultDedupeSize),
		StartingFates:  getEnvAsInt("STARTING_FATES", DefaultStartingFates),
		WeaponCapacity: getEnvAsInt("WEAPON_CAPACITY", DefaultWeaponCapacity),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv treats an empty variable as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
