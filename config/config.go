/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads settings store configuration from a file, a .env file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SETTINGSTORE"

// Config aggregates the configuration of the store and its engines.
type Config struct {
	Engine        string         `mapstructure:"engine"`
	Delimiter     string         `mapstructure:"delimiter"`
	DefaultValues string         `mapstructure:"default_values"`
	LogLevel      string         `mapstructure:"log_level"`
	Redis         RedisConfig    `mapstructure:"redis"`
	SQL           SQLConfig      `mapstructure:"sql"`
	DynamoDB      DynamoDBConfig `mapstructure:"dynamodb"`
	Cache         CacheConfig    `mapstructure:"cache"`
	Tracing       TracingConfig  `mapstructure:"tracing"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// SQLConfig selects a database/sql driver. Driver is "sqlite" or "postgres".
type SQLConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type DynamoDBConfig struct {
	Region    string `mapstructure:"region"`
	Table     string `mapstructure:"table"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
}

// CacheConfig enables the read-through cache when TTL is positive.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// TracingConfig enables OpenTelemetry spans around engine calls.
// Exporter is "stdout" (spans written to stderr) or "none".
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Exporter    string `mapstructure:"exporter"`
	ServiceName string `mapstructure:"service_name"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Engine:    "redis",
		Delimiter: ":",
		LogLevel:  "info",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "registry",
		},
		SQL: SQLConfig{
			Driver: "sqlite",
			DSN:    "settings.db",
		},
		DynamoDB: DynamoDBConfig{
			Region: "us-east-1",
			Table:  "settings",
			Prefix: "registry",
		},
		Tracing: TracingConfig{
			Exporter:    "stdout",
			ServiceName: "settingstore",
		},
	}
}

// Load reads configuration from files and environment variables.
// If path is empty, "settingstore.yaml" is looked up in the working directory
// and its absence is not an error. A .env file in the working directory is
// loaded first when present.
// Environment variables use the prefix "SETTINGSTORE" and the dot character
// in keys is replaced by an underscore. For example, "redis.addr" becomes
// "SETTINGSTORE_REDIS_ADDR".
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("settingstore")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Engine == "" {
		return fmt.Errorf("config: engine must be set")
	}
	if c.Delimiter == "" {
		return fmt.Errorf("config: delimiter must not be empty")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config: cache.ttl must not be negative")
	}
	return nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(append([]string{}, parts...), tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
