// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"maps"
	"net/url"

	"github.com/spf13/cast"

	"github.com/MKhiriev/keeper-commander/internal/config"
	"github.com/MKhiriev/keeper-commander/internal/endpoint"
	"github.com/MKhiriev/keeper-commander/internal/logger"
	"github.com/MKhiriev/keeper-commander/models"
)

// Entity is a decoded cache entry as delivered by the sync collaborator.
type Entity = map[string]any

// State is the authentication state of a session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Store is the per-invocation session registry every command operates on.
//
// Exactly one Store exists per process. It is passed explicitly to each
// collaborator and is not safe for concurrent use.
type Store struct {
	// ConfigFilename is the file the configuration was read from and is
	// written back to.
	ConfigFilename string

	settings *config.Settings
	endpoint *endpoint.Resolver
	log      *logger.Logger

	// Identity and credentials.
	User     string
	Password string
	MFAToken string
	MFAType  string
	LoginV3  bool

	// Session-derived secrets, empty until authenticated.
	SessionToken     string
	Salt             []byte
	Iterations       int
	DataKey          []byte
	RSAKey           []byte
	AuthVerifier     []byte
	DeviceToken      []byte
	DevicePrivateKey string
	CloneCode        []byte
	Revision         int64

	// Entity caches keyed by UID.
	RecordCache          map[string]Entity
	MetaDataCache        map[string]Entity
	SharedFolderCache    map[string]Entity
	TeamCache            map[string]Entity
	KeyCache             map[string]Entity
	SubfolderCache       map[string]Entity
	SubfolderRecordCache map[string]map[string]struct{}
	NonSharedDataCache   map[string]Entity
	FolderCache          map[string]*models.Folder
	RecordHistory        map[string][]Entity

	// AvailableTeamCache is nil until the team list has been fetched.
	AvailableTeamCache []Entity

	// RootFolder and CurrentFolder point into the folder tree; the store
	// never owns them through these fields.
	RootFolder    *models.Folder
	CurrentFolder *models.Folder

	// Work queues.
	Commands             []string
	EventQueue           []models.AuditEvent
	PendingShareRequests map[string]struct{}
	EnvironmentVariables map[string]string

	Debug           bool
	BatchMode       bool
	SyncData        bool
	PrepareCommands bool
	TimeDelay       int
	LogoutTimer     int

	// Enterprise and licensing, populated after login.
	License         Entity
	AccountSettings Entity
	Enforcements    Entity
	Enterprise      Entity
	EnterpriseID    int64
	MSPTreeKey      []byte

	Plugins []map[string]any
}

// New builds a session from decoded settings. It has no process-wide side
// effects; the caller configures logging.
func New(configFilename string, s *config.Settings, log *logger.Logger) *Store {
	if s == nil {
		s = config.DefaultSettings()
	}

	resolver := endpoint.Resolve(s.Region, s.Server, s.DeviceID, log).
		WithServerKeyID(s.ServerKeyID)

	mfaType := s.MFAType
	if mfaType == "" {
		mfaType = config.DefaultMFAType
	}

	st := &Store{
		ConfigFilename: configFilename,
		settings:       s,
		endpoint:       resolver,
		log:            log,

		User:             s.User,
		Password:         s.Password,
		MFAToken:         s.MFAToken,
		MFAType:          mfaType,
		LoginV3:          s.LoginV3,
		DevicePrivateKey: s.PrivateKey,

		Debug:       s.Debug,
		BatchMode:   s.BatchMode,
		SyncData:    true,
		TimeDelay:   s.TimeDelay,
		LogoutTimer: s.LogoutTimer,

		Plugins: s.Plugins,
	}
	st.resetCaches()
	st.Commands = queuedCommands(s.Commands)

	return st
}

// FromMap decodes a raw configuration mapping and builds a session. It fails
// only with [config.ErrInvalidConfigShape].
func FromMap(configFilename string, raw map[string]any, log *logger.Logger) (*Store, error) {
	s, err := config.Decode(raw, log)
	if err != nil {
		return nil, err
	}

	return New(configFilename, s, log), nil
}

// FromConfig resolves the config path, loads it and builds a session.
func FromConfig(explicitPath string, e config.Env, log *logger.Logger) (*Store, error) {
	path := config.ResolvePath(explicitPath, e)
	return FromMap(path, config.Load(path, log), log)
}

// queuedCommands picks the configured commands that carry a command line.
func queuedCommands(configured []map[string]any) []string {
	out := make([]string, 0, len(configured))
	for _, c := range configured {
		line, err := cast.ToStringE(c["command"])
		if err != nil || line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func (st *Store) resetCaches() {
	st.RecordCache = map[string]Entity{}
	st.MetaDataCache = map[string]Entity{}
	st.SharedFolderCache = map[string]Entity{}
	st.TeamCache = map[string]Entity{}
	st.KeyCache = map[string]Entity{}
	st.SubfolderCache = map[string]Entity{}
	st.SubfolderRecordCache = map[string]map[string]struct{}{}
	st.NonSharedDataCache = map[string]Entity{}
	st.FolderCache = map[string]*models.Folder{}
	st.RecordHistory = map[string][]Entity{}
	st.AvailableTeamCache = nil

	st.Commands = []string{}
	st.EventQueue = []models.AuditEvent{}
	st.PendingShareRequests = map[string]struct{}{}
	st.EnvironmentVariables = map[string]string{}
}

// ClearSession returns the session to the unauthenticated state.
//
// Secrets, caches, queues and enterprise data are dropped. The config file
// name, passthrough configuration, LoginV3, the device id and the endpoint
// survive. Calling it repeatedly yields the same state.
func (st *Store) ClearSession() {
	st.User = ""
	st.Password = ""
	st.MFAToken = ""
	st.MFAType = config.DefaultMFAType

	st.SessionToken = ""
	st.Salt = nil
	st.Iterations = 0
	st.DataKey = nil
	st.RSAKey = nil
	st.AuthVerifier = nil
	st.DeviceToken = nil
	st.DevicePrivateKey = ""
	st.CloneCode = nil
	st.Revision = 0

	st.resetCaches()
	st.RootFolder = nil
	st.CurrentFolder = nil

	st.SyncData = true
	st.PrepareCommands = true
	st.BatchMode = false
	st.LogoutTimer = st.settings.LogoutTimer

	st.License = nil
	st.AccountSettings = nil
	st.Enforcements = nil
	st.Enterprise = nil
	st.EnterpriseID = 0
	st.MSPTreeKey = nil

	st.log.Debug().Msg("session cleared")
}

// State reports whether the session holds a session token.
func (st *Store) State() State {
	if st.SessionToken != "" {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// IsAuthenticated is shorthand for State() == StateAuthenticated.
func (st *Store) IsAuthenticated() bool {
	return st.State() == StateAuthenticated
}

// Endpoint returns the resolver shared with transport collaborators.
func (st *Store) Endpoint() *endpoint.Resolver {
	return st.endpoint
}

// DeviceID returns the decoded device identity.
func (st *Store) DeviceID() []byte {
	return st.endpoint.DeviceID()
}

// Region returns the symbolic name of the session region, e.g. "EU".
func (st *Store) Region() string {
	return st.endpoint.Region().String()
}

// Server returns the current API base URL.
func (st *Store) Server() string {
	return st.endpoint.BaseURL()
}

// SetServer replaces the API base URL and installs it as the resolver's
// explicit override.
func (st *Store) SetServer(baseURL string) {
	st.endpoint.SetBaseURL(baseURL)
}

// Domain returns the host of the current base URL.
func (st *Store) Domain() string {
	u, err := url.Parse(st.Server())
	if err != nil {
		return ""
	}
	return u.Host
}

// URL returns the scheme and host of the current base URL with the path
// reset to "/".
func (st *Store) URL() string {
	u, err := url.Parse(st.Server())
	if err != nil {
		return ""
	}
	root := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	return root.String()
}

// Settings returns the configuration to persist: the loaded settings
// including passthrough keys, updated with the values negotiated during this
// session.
func (st *Store) Settings() *config.Settings {
	s := *st.settings
	s.Extra = maps.Clone(st.settings.Extra)
	s.DeviceID = st.endpoint.DeviceID()
	if keyID := st.endpoint.ServerKeyID(); s.ServerKeyID > 0 || keyID != endpoint.DefaultServerKeyID {
		s.ServerKeyID = keyID
	}
	s.LoginV3 = st.LoginV3
	return &s
}
