// Package config resolves service settings from flags, STOREFRONT_*
// environment variables and an optional .env file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

const (
	StorageMemory   = "memory"
	StorageLevelDB  = "leveldb"
	StoragePostgres = "postgres"
)

const minJWTSecretLen = 32

var (
	ErrUnknownStorage   = errors.New("unknown storage backend")
	ErrMissingDSN       = errors.New("database_url is required for postgres storage")
	ErrMissingLevelPath = errors.New("leveldb_path is required for leveldb storage")
	ErrWeakJWTSecret    = errors.New("jwt_secret must be at least 32 chars when admin_password_hash is set")
)

type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	Storage     string `mapstructure:"storage"`
	LevelDBPath string `mapstructure:"leveldb_path"`
	DatabaseURL string `mapstructure:"database_url"`

	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsToken   string `mapstructure:"metrics_token"`

	AdminPasswordHash string `mapstructure:"admin_password_hash"`
	JWTSecret         string `mapstructure:"jwt_secret"`
	WriteLimitPerMin  int    `mapstructure:"write_limit_per_min"`

	// HashPassword, when set, asks the binary to print a bcrypt hash and exit.
	HashPassword string `mapstructure:"hash_password"`
}

// key -> flag name
var flagKeys = map[string]string{
	"port":                "port",
	"log_level":           "log-level",
	"storage":             "storage",
	"leveldb_path":        "leveldb-path",
	"database_url":        "database-url",
	"metrics_enabled":     "metrics",
	"metrics_token":       "metrics-token",
	"admin_password_hash": "admin-password-hash",
	"jwt_secret":          "jwt-secret",
	"write_limit_per_min": "write-limit",
	"hash_password":       "hash-password",
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("port", "8080", "http listen port")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("storage", StorageMemory, "catalog storage backend: memory, leveldb or postgres")
	fs.String("leveldb-path", "data/catalog", "leveldb directory for the leveldb backend")
	fs.String("database-url", "", "postgres dsn for the postgres backend")
	fs.Bool("metrics", true, "expose /metrics")
	fs.String("metrics-token", "", "bearer token required by /metrics")
	fs.String("admin-password-hash", "", "bcrypt hash of the admin password; empty leaves writes open")
	fs.String("jwt-secret", "", "secret used to sign admin tokens")
	fs.Int("write-limit", 60, "mutating requests per minute per client ip, 0 to disable")
	fs.String("hash-password", "", "print the bcrypt hash of this password and exit")
	return fs
}

// Load parses args (without the program name) and resolves the config.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	fs := newFlagSet("storefront")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", flag, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.HashPassword != "" {
		return nil
	}

	switch c.Storage {
	case StorageMemory:
	case StorageLevelDB:
		if c.LevelDBPath == "" {
			return ErrMissingLevelPath
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Storage)
	}

	if c.AdminPasswordHash != "" && len(c.JWTSecret) < minJWTSecretLen {
		return ErrWeakJWTSecret
	}
	return nil
}
