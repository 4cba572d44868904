package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	SMS struct {
		GatewayURL string `mapstructure:"gateway_url"`
		Username   string `mapstructure:"username"`
		Password   string `mapstructure:"password"`
	} `mapstructure:"sms"`

	Shop struct {
		Name           string  `mapstructure:"name"`
		Address        string  `mapstructure:"address"`
		Phone          string  `mapstructure:"phone"`
		Email          string  `mapstructure:"email"`
		Hours          string  `mapstructure:"hours"`
		PublicBaseURL  string  `mapstructure:"public_base_url"` // base for tracking links in QR codes
		StorageFeeDay  float64 `mapstructure:"storage_fee_per_day"`
		StorageFreeDay int     `mapstructure:"storage_free_days"`
		HighValueFloor float64 `mapstructure:"high_value_floor"` // cost floor for the top-10 report list
	} `mapstructure:"shop"`

	Media struct {
		Backend  string `mapstructure:"backend"` // "local" or "s3"
		Root     string `mapstructure:"root"`    // local backend media root
		Bucket   string `mapstructure:"bucket"`
		Endpoint string `mapstructure:"endpoint"` // S3-compatible endpoint (R2 etc.)
		Region   string `mapstructure:"region"`
		Key      string `mapstructure:"key"`
		Secret   string `mapstructure:"secret"`
	} `mapstructure:"media"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "repair-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "repair_db")
	v.SetDefault("sms.gateway_url", "https://api.sms-gate.app/3rdparty/v1/message")
	v.SetDefault("shop.name", "Alamana Jo")
	v.SetDefault("shop.address", "Quellinstraat 45, 2018 Antwerpen")
	v.SetDefault("shop.phone", "+32 (499) 89-0237")
	v.SetDefault("shop.email", "alamanajo@gmail.com")
	v.SetDefault("shop.hours", "Fri-Wed 11:00-19:00, Thu: Closed")
	v.SetDefault("shop.public_base_url", "https://alamanajo.eu")
	v.SetDefault("shop.storage_fee_per_day", 2)
	v.SetDefault("shop.storage_free_days", 14)
	v.SetDefault("shop.high_value_floor", 100)
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.root", "media")
	v.SetDefault("redis.addr", "localhost:6379")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// JWT secret comes from the environment unless set in the file
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in environment or config file")
		}
	}

	// SMS gateway credentials from environment. Leaving them unset is fine:
	// sends then fail with a "not configured" reason instead of crashing.
	if user := os.Getenv("SMS_USERNAME"); user != "" {
		cfg.SMS.Username = user
	}
	if pass := os.Getenv("SMS_PASSWORD"); pass != "" {
		cfg.SMS.Password = pass
	}

	// S3 media credentials from environment
	if key := os.Getenv("MEDIA_S3_KEY"); key != "" {
		cfg.Media.Key = key
	}
	if secret := os.Getenv("MEDIA_S3_SECRET"); secret != "" {
		cfg.Media.Secret = secret
	}

	return &cfg
}
