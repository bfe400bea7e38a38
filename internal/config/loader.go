package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/MKhiriev/keeper-commander/internal/logger"
)

// DefaultFileName is the config file used when neither a flag nor
// KEEPER_CONFIG_FILE names one.
const DefaultFileName = "config.json"

// ResolvePath returns the effective config file path: the explicit
// argument, else the KEEPER_CONFIG_FILE override, else [DefaultFileName].
func ResolvePath(explicit string, e Env) string {
	switch {
	case explicit != "":
		return explicit
	case e.ConfigFile != "":
		return e.ConfigFile
	default:
		return DefaultFileName
	}
}

// Load reads the JSON object stored at path.
//
// Load never fails. A missing file is normal for a first run; unreadable or
// malformed files are logged and the caller proceeds with defaults. Numbers
// are kept as json.Number so that unknown keys survive a round trip
// unchanged.
func Load(path string, log *logger.Logger) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("config file not found, using defaults")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("unable to open config file")
		}
		return map[string]any{}
	}

	cfg, err := parseJSON(data)
	if err != nil {
		log.Error().Err(err).Str("path", path).
			Msg("unable to parse JSON configuration file, please check config for errors")
		return map[string]any{}
	}

	log.Debug().Str("path", path).Msg("parsed config JSON successfully")
	return cfg
}

func parseJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var cfg map[string]any
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}
	if cfg == nil {
		// literal "null"
		return map[string]any{}, nil
	}

	return cfg, nil
}
