package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config — настройки приложения, собранные из окружения и .env
type Config struct {
	Port          string
	DBDriver      string
	DBDSN         string
	SessionSecret string

	WebRoot    string
	ImageDir   string
	MaxImageKB int64
	PageSize   int

	LogLevel string
	LogMode  string
	LogFile  string

	KafkaBrokers []string
	KafkaTopic   string

	SeedCategories []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SESSION_SECRET", "dev_fallback_secret")
	v.SetDefault("WEB_ROOT", "./wwwroot")
	v.SetDefault("IMAGE_DIR", "img")
	v.SetDefault("MAX_IMAGE_KB", 500)
	v.SetDefault("PAGE_SIZE", 4)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("KAFKA_TOPIC", "catalog.products")
	v.SetDefault("SEED_CATEGORIES", "Furniture,Lighting,Decor,Textile")
}

// Load грузит .env из нескольких мест (текущая папка, родительская, корень репо)
// и читает переменные окружения через viper.
func Load() (*Config, error) {
	_ = godotenv.Overload(".env", "../.env", "../../.env")
	return FromViper(viper.New())
}

// FromViper собирает Config из уже настроенного экземпляра viper.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("APP_PORT"),
		DBDriver:       strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBDSN:          v.GetString("DB_DSN"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		WebRoot:        v.GetString("WEB_ROOT"),
		ImageDir:       v.GetString("IMAGE_DIR"),
		MaxImageKB:     v.GetInt64("MAX_IMAGE_KB"),
		PageSize:       v.GetInt("PAGE_SIZE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogMode:        v.GetString("LOG_MODE"),
		LogFile:        v.GetString("LOG_FILE"),
		KafkaBrokers:   splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:     v.GetString("KAFKA_TOPIC"),
		SeedCategories: splitList(v.GetString("SEED_CATEGORIES")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "memory":
	case "postgres", "mysql":
		if c.DBDSN == "" {
			return errors.New("DB_DSN is empty (check your .env)")
		}
	default:
		return errors.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.MaxImageKB <= 0 {
		return errors.Errorf("MAX_IMAGE_KB must be positive, got %d", c.MaxImageKB)
	}
	if c.PageSize < 1 {
		c.PageSize = 4
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
