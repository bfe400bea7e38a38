// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cast"

	"github.com/MKhiriev/keeper-commander/internal/logger"
)

// Env holds the KEEPER_* environment overrides.
type Env struct {
	// ConfigFile overrides the default config file path.
	ConfigFile string

	// Server is a bare host name, e.g. "keepersecurity.eu".
	Server string

	User     string
	Password string

	// Debug and BatchMode are nil when the variable is unset or unparsable.
	Debug     *bool
	BatchMode *bool

	// LoginV3 is bool-like, see [ParseBoolLike].
	LoginV3 string
}

// rawEnv is what caarlos0/env reads; booleans stay strings so that a bad
// value can be dropped instead of failing the whole parse.
type rawEnv struct {
	ConfigFile string `env:"KEEPER_CONFIG_FILE"`
	Server     string `env:"KEEPER_SERVER"`
	User       string `env:"KEEPER_USER"`
	Password   string `env:"KEEPER_PASSWORD"`
	Debug      string `env:"KEEPER_DEBUG"`
	BatchMode  string `env:"KEEPER_BATCH_MODE"`
	LoginV3    string `env:"KEEPER_LOGIN_V3"`
}

// ParseEnv populates an [Env] from environ using the caarlos0/env library.
// A nil environ means the process environment.
//
// A KEEPER_DEBUG or KEEPER_BATCH_MODE value that is not a boolean is logged
// and ignored, the same way malformed config file values fall back to their
// defaults.
func ParseEnv(environ map[string]string, log *logger.Logger) (Env, error) {
	var raw rawEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return Env{}, fmt.Errorf("%w: %w", ErrEnvParse, err)
	}

	return Env{
		ConfigFile: raw.ConfigFile,
		Server:     raw.Server,
		User:       raw.User,
		Password:   raw.Password,
		Debug:      envBool("KEEPER_DEBUG", raw.Debug, log),
		BatchMode:  envBool("KEEPER_BATCH_MODE", raw.BatchMode, log),
		LoginV3:    raw.LoginV3,
	}, nil
}

func envBool(name, value string, log *logger.Logger) *bool {
	if value == "" {
		return nil
	}

	b, err := cast.ToBoolE(value)
	if err != nil {
		log.Warn().Str("variable", name).Str("value", value).Msg("expected a boolean in environment, ignoring")
		return nil
	}

	return &b
}
