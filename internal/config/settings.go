package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/MKhiriev/keeper-commander/internal/logger"
)

// Recognised top-level configuration keys.
const (
	KeyUser        = "user"
	KeyPassword    = "password"
	KeyServer      = "server"
	KeyRegion      = "region"
	KeyDeviceID    = "device_id"
	KeyMFAToken    = "mfa_token"
	KeyMFAType     = "mfa_type"
	KeyCommands    = "commands"
	KeyPlugins     = "plugins"
	KeyDebug       = "debug"
	KeyBatchMode   = "batch_mode"
	KeyTimeDelay   = "timedelay"
	KeyLogoutTimer = "logout_timer"
	KeyLoginV3     = "login_v3"
	KeyPrivateKey  = "private_key"
	KeyServerKeyID = "server_key_id"
)

// DefaultMFAType is used whenever the configured MFA type is empty.
const DefaultMFAType = "device_token"

var knownKeys = []string{
	KeyUser, KeyPassword, KeyServer, KeyRegion, KeyDeviceID, KeyMFAToken,
	KeyMFAType, KeyCommands, KeyPlugins, KeyDebug, KeyBatchMode, KeyTimeDelay,
	KeyLogoutTimer, KeyLoginV3, KeyPrivateKey, KeyServerKeyID,
}

// Settings is the typed view of a configuration file.
//
// Known keys are decoded into fields; everything else is kept verbatim in
// Extra and merged back by MarshalJSON.
type Settings struct {
	User     string
	Password string

	// Server is the legacy full server URL. Region takes precedence when
	// both are set.
	Server string
	Region string

	// DeviceID is the decoded device identity.
	DeviceID []byte

	// ServerKeyID is the last negotiated server key id, 0 when never stored.
	ServerKeyID int

	MFAToken string
	MFAType  string

	Commands []map[string]any
	Plugins  []map[string]any

	Debug     bool
	BatchMode bool

	// TimeDelay is the interval in seconds for the scheduled command runner.
	TimeDelay   int
	LogoutTimer int
	LoginV3     bool
	PrivateKey  string

	// Extra holds unrecognised keys for forward compatibility.
	Extra map[string]any
}

// DefaultSettings returns the settings used when the config file is empty.
func DefaultSettings() *Settings {
	return &Settings{
		MFAType:  DefaultMFAType,
		Commands: []map[string]any{},
		Plugins:  []map[string]any{},
		LoginV3:  true,
		Extra:    map[string]any{},
	}
}

// Decode converts a generic configuration mapping into [Settings].
//
// Only a "commands" or "plugins" value that is not a list of objects is
// fatal and reported as [ErrInvalidConfigShape]. Any other malformed value is
// logged and replaced by its default.
func Decode(raw map[string]any, log *logger.Logger) (*Settings, error) {
	s := DefaultSettings()
	d := decoder{raw: raw, log: log}

	var err error
	if s.Commands, err = decodeObjectList(raw, KeyCommands); err != nil {
		return nil, err
	}
	if s.Plugins, err = decodeObjectList(raw, KeyPlugins); err != nil {
		return nil, err
	}

	s.User = strings.ToLower(d.getString(KeyUser))
	s.Password = d.getString(KeyPassword)
	s.Server = d.getString(KeyServer)
	s.Region = d.getString(KeyRegion)
	s.MFAToken = d.getString(KeyMFAToken)
	if mfaType := d.getString(KeyMFAType); mfaType != "" {
		s.MFAType = mfaType
	}
	s.Debug = d.getBool(KeyDebug, false)
	s.BatchMode = d.getBool(KeyBatchMode, false)
	s.LoginV3 = d.getBool(KeyLoginV3, true)
	s.TimeDelay = d.getInt(KeyTimeDelay)
	s.LogoutTimer = d.getInt(KeyLogoutTimer)
	s.PrivateKey = d.getString(KeyPrivateKey)
	s.ServerKeyID = d.getInt(KeyServerKeyID)

	if encoded := d.getString(KeyDeviceID); encoded != "" {
		id, err := DecodeDeviceID(encoded)
		if err != nil {
			log.Warn().Err(err).Msg("invalid device_id in configuration, ignoring")
		} else {
			s.DeviceID = id
		}
	}

	s.Extra = lo.OmitByKeys(raw, knownKeys)
	if s.Extra == nil {
		s.Extra = map[string]any{}
	}

	return s, nil
}

// MarshalJSON merges the known fields and Extra into a single JSON object.
// Known fields take precedence over a colliding Extra key.
func (s *Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// ToMap returns the configuration mapping that re-creates s. Zero-valued
// optional fields are omitted.
func (s *Settings) ToMap() map[string]any {
	out := maps.Clone(s.Extra)
	if out == nil {
		out = map[string]any{}
	}

	setIf := func(key string, v any, ok bool) {
		if ok {
			out[key] = v
		}
	}

	setIf(KeyUser, s.User, s.User != "")
	setIf(KeyPassword, s.Password, s.Password != "")
	setIf(KeyServer, s.Server, s.Server != "")
	setIf(KeyRegion, s.Region, s.Region != "")
	setIf(KeyDeviceID, EncodeDeviceID(s.DeviceID), len(s.DeviceID) > 0)
	setIf(KeyMFAToken, s.MFAToken, s.MFAToken != "")
	setIf(KeyMFAType, s.MFAType, s.MFAType != "" && s.MFAType != DefaultMFAType)
	setIf(KeyCommands, s.Commands, len(s.Commands) > 0)
	setIf(KeyPlugins, s.Plugins, len(s.Plugins) > 0)
	setIf(KeyDebug, s.Debug, s.Debug)
	setIf(KeyBatchMode, s.BatchMode, s.BatchMode)
	setIf(KeyTimeDelay, s.TimeDelay, s.TimeDelay > 0)
	setIf(KeyLogoutTimer, s.LogoutTimer, s.LogoutTimer > 0)
	setIf(KeyPrivateKey, s.PrivateKey, s.PrivateKey != "")
	setIf(KeyServerKeyID, s.ServerKeyID, s.ServerKeyID > 0)
	out[KeyLoginV3] = s.LoginV3

	return out
}

// DecodeDeviceID decodes a stored device id.
//
// Stored ids are URL-safe base64 written without padding. Exactly two "="
// are appended before decoding regardless of the input length, and excess
// padding is ignored, which matches how existing config files were read.
// Inputs that are not decodable even then return an error.
func DecodeDeviceID(encoded string) ([]byte, error) {
	padded := encoded + "=="

	id, err := base64.URLEncoding.DecodeString(padded)
	if err == nil {
		return id, nil
	}

	// Length was already a multiple of four (or one short of it): the two
	// appended characters are excess padding.
	id, rawErr := base64.RawURLEncoding.DecodeString(strings.TrimRight(padded, "="))
	if rawErr != nil {
		return nil, fmt.Errorf("decode device id: %w", err)
	}

	return id, nil
}

// EncodeDeviceID is the inverse of [DecodeDeviceID].
func EncodeDeviceID(id []byte) string {
	return base64.RawURLEncoding.EncodeToString(id)
}

type decoder struct {
	raw map[string]any
	log *logger.Logger
}

func (d decoder) getString(key string) string {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return ""
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		d.log.Warn().Str("key", key).Msg("expected a string in configuration, using default")
		return ""
	}

	return s
}

func (d decoder) getBool(key string, def bool) bool {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return def
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		d.log.Warn().Str("key", key).Msg("expected a boolean in configuration, using default")
		return def
	}

	return b
}

func (d decoder) getInt(key string) int {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return 0
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		d.log.Warn().Str("key", key).Msg("expected an integer in configuration, using default")
		return 0
	}

	return n
}

func decodeObjectList(raw map[string]any, key string) ([]map[string]any, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return []map[string]any{}, nil
	}

	switch list := v.(type) {
	case []map[string]any:
		return list, nil
	case []any:
		out := make([]map[string]any, 0, len(list))
		for i, item := range list {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is %T, want object", ErrInvalidConfigShape, key, i, item)
			}
			out = append(out, obj)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, want list of objects", ErrInvalidConfigShape, key, v)
	}
}
