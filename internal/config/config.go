package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/m7real/ex-mobile-server/internal/storage"
)

const defaultCluster = "cluster0.wo3xvdt.mongodb.net"

// Config is the process configuration read from the environment.
type Config struct {
	Env          string        `validate:"required"`
	Port         string        `validate:"required,numeric"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
	MongoURI     string        `validate:"required"`
	DBName       string        `validate:"required"`
	StoreTimeout time.Duration `validate:"gt=0"`
	TokenSecret  string        `validate:"required"`
	TokenTTL     time.Duration `validate:"gt=0"`
	CORSOrigins  string
	Minio        storage.MinioConfig

	// DotEnv reports whether Load read a .env file.
	DotEnv bool
}

// StorageEnabled reports whether product image uploads are configured.
func (c Config) StorageEnabled() bool {
	return c.Minio.Endpoint != ""
}

// IsDevelopment selects the console logger.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads .env when present, then the environment. Logging is not set
// up yet, so callers report a missing .env through DotEnv.
func Load() (Config, error) {
	loaded := godotenv.Load() == nil
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	cfg.DotEnv = loaded
	return cfg, nil
}

// FromEnv builds a Config from getenv and validates it.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Env:         get("APP_ENV", "development"),
		Port:        get("PORT", "5000"),
		LogLevel:    get("LOG_LEVEL", "info"),
		MongoURI:    get("MONGO_URI", ""),
		DBName:      get("DB_NAME", "exMobile"),
		TokenSecret: get("ACCESS_TOKEN_SECRET", ""),
		CORSOrigins: get("CORS_ORIGINS", "*"),
		Minio: storage.MinioConfig{
			Endpoint:  get("MINIO_ENDPOINT", ""),
			AccessKey: get("MINIO_ACCESS_KEY", ""),
			SecretKey: get("MINIO_SECRET_KEY", ""),
			Bucket:    get("MINIO_BUCKET", "ex-mobile-images"),
		},
	}

	if cfg.MongoURI == "" && getenv("DB_USER") != "" {
		cfg.MongoURI = atlasURI(getenv("DB_USER"), getenv("DB_PASS"), get("DB_CLUSTER", defaultCluster))
	}

	var err error
	if cfg.StoreTimeout, err = time.ParseDuration(get("STORE_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("parse STORE_TIMEOUT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(get("ACCESS_TOKEN_TTL", "216h")); err != nil {
		return Config{}, fmt.Errorf("parse ACCESS_TOKEN_TTL: %w", err)
	}
	if cfg.Minio.UseSSL, err = strconv.ParseBool(get("MINIO_USE_SSL", "false")); err != nil {
		return Config{}, fmt.Errorf("parse MINIO_USE_SSL: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func atlasURI(user, pass, cluster string) string {
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     cluster,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}
