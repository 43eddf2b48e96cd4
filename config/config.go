package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Mapbox  MapboxConfig  `mapstructure:"mapbox"`
	Storage StorageConfig `mapstructure:"storage"`
	Mail    MailConfig    `mapstructure:"mail"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTKey       string        `mapstructure:"jwt_key"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
	ResetTTL     time.Duration `mapstructure:"reset_ttl"`
}

type MapboxConfig struct {
	Token   string        `mapstructure:"token"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Driver             string `mapstructure:"driver"`
	Folder             string `mapstructure:"folder"`
	LocalPath          string `mapstructure:"local_path"`
	LocalURL           string `mapstructure:"local_url"`
	S3Region           string `mapstructure:"s3_region"`
	S3Bucket           string `mapstructure:"s3_bucket"`
	GCSBucket          string `mapstructure:"gcs_bucket"`
	GCSCredentialsFile string `mapstructure:"gcs_credentials_file"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var envBindings = map[string]string{
	"server.port":                  "PORT",
	"server.allowed_origins":       "ALLOWED_ORIGINS",
	"mongo.uri":                    "MONGOURI",
	"mongo.database":               "DB",
	"redis.addr":                   "REDIS_ADD",
	"redis.password":               "REDIS_PASS",
	"redis.db":                     "REDIS_DB",
	"auth.jwt_key":                 "JWT_KEY",
	"auth.token_ttl":               "TOKEN_TTL",
	"auth.session_ttl":             "SESSION_TTL",
	"auth.secure_cookie":           "SECURE_COOKIE",
	"auth.reset_ttl":               "RESET_TTL",
	"mapbox.token":                 "MAPBOX_TOKEN",
	"mapbox.base_url":              "MAPBOX_BASE_URL",
	"mapbox.timeout":               "MAPBOX_TIMEOUT",
	"storage.driver":               "STORAGE_DRIVER",
	"storage.folder":               "STORAGE_FOLDER",
	"storage.local_path":           "LOCAL_STORAGE_PATH",
	"storage.local_url":            "LOCAL_STORAGE_URL",
	"storage.s3_region":            "S3_REGION",
	"storage.s3_bucket":            "S3_BUCKET",
	"storage.gcs_bucket":           "GCS_BUCKET_NAME",
	"storage.gcs_credentials_file": "GCS_CREDENTIALS_FILE",
	"mail.host":                    "SMTP_HOST",
	"mail.port":                    "SMTP_PORT",
	"mail.username":                "SMTP_USERNAME",
	"mail.password":                "SMTP_PASSWORD",
	"mail.from":                    "MAIL_FROM",
	"log.level":                    "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("mongo.database", "surf-shop")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.token_ttl", "15m")
	v.SetDefault("auth.session_ttl", "24h")
	v.SetDefault("auth.secure_cookie", false)
	v.SetDefault("auth.reset_ttl", "1h")
	v.SetDefault("mapbox.base_url", "https://api.mapbox.com")
	v.SetDefault("mapbox.timeout", "5s")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.folder", "surf-shop")
	v.SetDefault("storage.local_path", "./uploads")
	v.SetDefault("storage.local_url", "/uploads")
	v.SetDefault("storage.s3_region", "us-west-2")
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 465)
	v.SetDefault("mail.from", "Surf Shop Admin <no-reply@surfshop.dev>")
	v.SetDefault("log.level", "info")
}

// Load reads .env (when present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("MONGOURI not set in environment"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("DB not set in environment"))
	}
	if c.Auth.JWTKey == "" {
		errs = append(errs, errors.New("JWT_KEY not set in environment"))
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET not set in environment"))
		}
	case "gcs":
		if c.Storage.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET_NAME not set in environment"))
		}
	default:
		errs = append(errs, errors.New("STORAGE_DRIVER must be one of local, s3, gcs"))
	}
	return errors.Join(errs...)
}
