// Package config loads service configuration from the environment, with an
// optional YAML file and .env support for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service.
type Config struct {
	// Environment switches log output between JSON and console encoding.
	Environment string `env:"ENVIRONMENT" env-default:"production" yaml:"environment"`

	// HTTP contains the HTTP server settings.
	HTTP struct {
		// Addr is the address and port the server listens on.
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request.
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"5s" yaml:"readTimeout"`
		// ReadHeaderTimeout is the time allowed to read request headers.
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"2s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out response writes.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s" yaml:"writeTimeout"`
		// IdleTimeout caps how long keep-alive connections wait for the next request.
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s" yaml:"idleTimeout"`
		// MaxHeaderBytes limits the size of request headers.
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"65536" yaml:"maxHeaderBytes"`
		// MaxBodyBytes limits the size of request bodies.
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"1048576" yaml:"maxBodyBytes"`
	} `yaml:"http"`

	// GracefulShutdownTimeout bounds how long in-flight requests may finish
	// after a termination signal.
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"`
}

// Load builds the configuration from, in order of increasing precedence:
// struct defaults, an optional YAML file named by CONFIG_PATH, and process
// environment variables. A .env file in the working directory is folded into
// the environment first when present.
func Load() (*Config, error) {
	// A missing .env file is not an error; it only exists in local setups.
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}
