package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config is the service configuration. Keys are read from config.yaml and may be
// overridden by environment variables of the same name.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Locale            string `mapstructure:"LOCALE"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Tokens are issued by the auth service with this shared secret.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB     int           `mapstructure:"REDIS_SESSION_DB"`
	RedisAuthDB        int           `mapstructure:"REDIS_AUTH_DB"`
	RedisNotifyQueueDB int           `mapstructure:"REDIS_NOTIFY_QUEUE_DB"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`

	NotifyWorkerCount       int    `mapstructure:"NOTIFY_WORKER_COUNT"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

var defaults = map[string]interface{}{
	"APP_PORT":                  "8080",
	"ENV":                       "development",
	"LOG_LEVEL":                 "info",
	"MAX_REQUESTS_PER_MIN":      200,
	"LOCALE":                    "en",
	"DATABASE_URL":              "mongodb://localhost:27017",
	"DATABASE_NAME":             "reviewdesk",
	"JWT_SECRET":                "",
	"REDIS_ADDR":                "localhost:6379",
	"REDIS_PASSWORD":            "",
	"REDIS_SESSION_DB":          0,
	"REDIS_AUTH_DB":             1,
	"REDIS_NOTIFY_QUEUE_DB":     3,
	"SESSION_TTL":               24 * time.Hour,
	"NOTIFY_WORKER_COUNT":       5,
	"FIREBASE_CREDENTIALS_FILE": "",
}

// LoadConfig fills AppConfig and exits the process on an unusable configuration.
func LoadConfig() {
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	AppConfig = cfg
}

// Load reads the configuration through v.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		log.Println("config: no config file, using environment only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch {
	case c.DatabaseURL == "":
		return errors.New("DATABASE_URL is required")
	case c.MaxRequestsPerMin <= 0:
		return fmt.Errorf("MAX_REQUESTS_PER_MIN must be positive, got %d", c.MaxRequestsPerMin)
	case c.IsProduction() && c.JWTSecret == "":
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// IsProduction reports whether the loaded configuration targets production.
func IsProduction() bool {
	return AppConfig.IsProduction()
}
