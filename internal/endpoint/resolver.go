package endpoint

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/keeper-commander/internal/logger"
)

const (
	// RESTPath is the fixed path of the REST API on every region host.
	RESTPath = "/api/rest/"

	DefaultLocale      = "en_US"
	DefaultServerKeyID = 1

	defaultTimeout = 30 * time.Second
)

// Resolver owns the endpoint a session talks to and the endpoint-scoped
// metadata negotiated with it.
type Resolver struct {
	region Region

	// override is set by SetBaseURL and wins over the region host until
	// ClearBaseURLOverride is called.
	override string

	locale          string
	transmissionKey []byte
	serverKeyID     int
	deviceID        []byte

	// dirty reports that serverKeyID or deviceID changed after construction.
	dirty bool
}

// Resolve picks the region for a session.
//
// A known regionHint (case-insensitive) wins. An unknown hint logs a warning
// and falls back to [DefaultRegion]. Without a hint, the host of
// legacyServerURL is matched against the region table; an unmatched host
// logs a warning and falls back to [DefaultRegion]. With neither,
// [DefaultRegion] is used.
func Resolve(regionHint, legacyServerURL string, deviceID []byte, log *logger.Logger) *Resolver {
	r := &Resolver{
		region:      resolveRegion(regionHint, legacyServerURL, log),
		locale:      DefaultLocale,
		serverKeyID: DefaultServerKeyID,
		deviceID:    deviceID,
	}

	log.Debug().
		Str("region", r.region.String()).
		Str("base_url", r.BaseURL()).
		Msg("endpoint resolved")

	return r
}

func resolveRegion(regionHint, legacyServerURL string, log *logger.Logger) Region {
	if regionHint != "" {
		region, ok := ParseRegion(regionHint)
		if !ok {
			log.Warn().
				Str("region", regionHint).
				Msg("unknown region in configuration, using default instead")
		}
		return region
	}

	if legacyServerURL == "" {
		return DefaultRegion
	}

	log.Debug().Str("server", legacyServerURL).Msg("deriving region from legacy server URL")

	var host string
	if u, err := url.Parse(legacyServerURL); err == nil {
		host = u.Host
	}

	region, ok := RegionForHost(host)
	if !ok {
		log.Warn().
			Str("server", legacyServerURL).
			Str("host", host).
			Msg("unrecognized domain configured, using default region")
	}

	return region
}

// URLForHost builds the REST base URL for a bare host name such as the one
// given with --server.
func URLForHost(host string) string {
	u := url.URL{Scheme: "https", Host: host, Path: RESTPath}
	return u.String()
}

// Region returns the current region.
func (r *Resolver) Region() Region {
	return r.region
}

// SetRegion switches the region. An explicit base URL override stays in
// effect.
func (r *Resolver) SetRegion(region Region) {
	r.region = region
}

// BaseURL returns the explicit override if one is set, otherwise the REST
// base URL of the current region.
func (r *Resolver) BaseURL() string {
	if r.override != "" {
		return r.override
	}
	return URLForHost(r.region.Host())
}

// SetBaseURL installs an explicit base URL that survives region changes for
// the rest of the session. An empty value clears the override.
func (r *Resolver) SetBaseURL(baseURL string) {
	r.override = baseURL
}

// HasOverride reports whether BaseURL comes from SetBaseURL.
func (r *Resolver) HasOverride() bool {
	return r.override != ""
}

// ClearBaseURLOverride makes BaseURL follow the region again.
func (r *Resolver) ClearBaseURLOverride() {
	r.override = ""
}

func (r *Resolver) Locale() string {
	return r.locale
}

func (r *Resolver) SetLocale(locale string) {
	r.locale = locale
}

// TransmissionKey returns the ephemeral transport key. It is never
// persisted and does not affect Dirty.
func (r *Resolver) TransmissionKey() []byte {
	return r.transmissionKey
}

func (r *Resolver) SetTransmissionKey(key []byte) {
	r.transmissionKey = key
}

func (r *Resolver) ServerKeyID() int {
	return r.serverKeyID
}

// WithServerKeyID seeds the server key id loaded from configuration without
// marking the endpoint dirty. Non-positive ids keep the default.
func (r *Resolver) WithServerKeyID(keyID int) *Resolver {
	if keyID > 0 {
		r.serverKeyID = keyID
	}
	return r
}

// SetServerKeyIDAndMarkDirty records the server key id negotiated with the
// server and flags the endpoint for persistence.
func (r *Resolver) SetServerKeyIDAndMarkDirty(keyID int) {
	r.serverKeyID = keyID
	r.dirty = true
}

func (r *Resolver) DeviceID() []byte {
	return r.deviceID
}

// SetDeviceIDAndMarkDirty records a newly registered device id and flags the
// endpoint for persistence.
func (r *Resolver) SetDeviceIDAndMarkDirty(deviceID []byte) {
	r.deviceID = deviceID
	r.dirty = true
}

// Dirty reports whether the device id or server key id was written after
// construction. Clearing it is up to whoever persists the configuration.
func (r *Resolver) Dirty() bool {
	return r.dirty
}

// NewRESTClient returns a resty client bound to the current base URL for use
// by transport collaborators. A non-positive timeout selects the default.
func (r *Resolver) NewRESTClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return resty.New().
		SetBaseURL(strings.TrimRight(r.BaseURL(), "/")).
		SetTimeout(timeout).
		SetHeader("Accept-Language", strings.ReplaceAll(r.locale, "_", "-"))
}

// String implements fmt.Stringer for debug output.
func (r *Resolver) String() string {
	return fmt.Sprintf("%s (%s)", r.region, r.BaseURL())
}
