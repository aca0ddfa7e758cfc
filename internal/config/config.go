// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

// Package config loads and validates server configuration. Values are
// layered: defaults, then an optional YAML file, then SHOPGRAPH_*
// environment variables, then command-line flags.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

const envPrefix = "SHOPGRAPH_"

// Config is the full server configuration.
type Config struct {
	Server  Server  `koanf:"server" json:"server"`
	Mongo   Mongo   `koanf:"mongo" json:"mongo"`
	Auth    Auth    `koanf:"auth" json:"auth"`
	Metrics Metrics `koanf:"metrics" json:"metrics"`
	Log     Log     `koanf:"log" json:"log"`
}

type Server struct {
	// Listen is the host:port the GraphQL endpoint binds to.
	Listen string `koanf:"listen" json:"listen" jsonschema:"default=:8080"`
	// ShutdownTimeout bounds graceful shutdown. Accepts Go duration
	// strings in YAML.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout,omitempty" jsonschema:"oneof_type=string;integer"`
}

type Mongo struct {
	URI      string `koanf:"uri" json:"uri" jsonschema:"required"`
	Database string `koanf:"database" json:"database" jsonschema:"default=shopgraph"`
}

type Auth struct {
	// TokenSecret signs issued tokens. Required; there is no insecure
	// default.
	TokenSecret string `koanf:"token_secret" json:"token_secret" jsonschema:"required"`
	// TokenTTL is how long issued tokens stay valid. Accepts Go
	// duration strings in YAML.
	TokenTTL time.Duration `koanf:"token_ttl" json:"token_ttl,omitempty" jsonschema:"oneof_type=string;integer"`
}

type Metrics struct {
	Listen string `koanf:"listen" json:"listen" jsonschema:"default=:9090"`
}

type Log struct {
	Level  string `koanf:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `koanf:"format" json:"format" jsonschema:"enum=text,enum=json,default=text"`
}

// Default returns the configuration before any file, env, or flag
// layering.
func Default() Config {
	return Config{
		Server:  Server{Listen: ":8080", ShutdownTimeout: 10 * time.Second},
		Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: "shopgraph"},
		Auth:    Auth{TokenTTL: 24 * time.Hour},
		Metrics: Metrics{Listen: ":9090"},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load builds the configuration. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_FAILED").With("path", path).Wrap(err)
		}
	}

	// SHOPGRAPH_MONGO_URI -> mongo.uri
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return Config{}, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_PARSE_FAILED").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks constraints the schema cannot express.
func (c Config) Validate() error {
	if c.Auth.TokenSecret == "" {
		return oops.Code("CONFIG_SECRET_MISSING").
			Errorf("auth.token_secret is required (set SHOPGRAPH_AUTH_TOKEN_SECRET or the config file)")
	}
	if c.Mongo.URI == "" {
		return oops.Code("CONFIG_MONGO_URI_MISSING").Errorf("mongo.uri is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return oops.Code("CONFIG_TTL_INVALID").
			With("token_ttl", c.Auth.TokenTTL.String()).
			Errorf("auth.token_ttl must be positive")
	}
	return nil
}
