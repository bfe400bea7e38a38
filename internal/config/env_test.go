// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keeper-commander/internal/logger"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	environ := map[string]string{
		"KEEPER_CONFIG_FILE": "/path/to/config.json",
		"KEEPER_SERVER":      "keepersecurity.eu",
		"KEEPER_USER":        "User@Example.com",
		"KEEPER_PASSWORD":    "secret",
		"KEEPER_DEBUG":       "true",
		"KEEPER_BATCH_MODE":  "false",
		"KEEPER_LOGIN_V3":    "t",
	}

	// Act
	e, err := ParseEnv(environ, logger.Nop())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", e.ConfigFile)
	assert.Equal(t, "keepersecurity.eu", e.Server)
	assert.Equal(t, "User@Example.com", e.User)
	assert.Equal(t, "secret", e.Password)
	require.NotNil(t, e.Debug)
	assert.True(t, *e.Debug)
	require.NotNil(t, e.BatchMode)
	assert.False(t, *e.BatchMode)
	assert.Equal(t, "t", e.LoginV3)
}

func TestParseEnv_Empty(t *testing.T) {
	e, err := ParseEnv(map[string]string{}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, Env{}, e)
	assert.Nil(t, e.Debug)
	assert.Nil(t, e.BatchMode)
}

// TestParseEnv_InvalidBool verifies that an unparsable boolean is dropped
// with a warning and the remaining variables are still read.
func TestParseEnv_InvalidBool(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger("test", &buf)

	e, err := ParseEnv(map[string]string{
		"KEEPER_DEBUG":      "maybe",
		"KEEPER_BATCH_MODE": "yes",
		"KEEPER_USER":       "user@example.com",
	}, log)

	require.NoError(t, err)
	assert.Nil(t, e.Debug)
	assert.Nil(t, e.BatchMode)
	assert.Equal(t, "user@example.com", e.User)
	assert.Contains(t, buf.String(), "KEEPER_DEBUG")
	assert.Contains(t, buf.String(), "KEEPER_BATCH_MODE")
}

func TestParseEnv_BoolForms(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "1", want: true},
		{value: "T", want: true},
		{value: "TRUE", want: true},
		{value: "0", want: false},
		{value: "f", want: false},
		{value: "False", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			e, err := ParseEnv(map[string]string{"KEEPER_DEBUG": tt.value}, logger.Nop())

			require.NoError(t, err)
			require.NotNil(t, e.Debug)
			assert.Equal(t, tt.want, *e.Debug)
		})
	}
}

func TestParseEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("KEEPER_PASSWORD", "from-process")

	e, err := ParseEnv(nil, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "from-process", e.Password)
}
