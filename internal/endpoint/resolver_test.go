package endpoint

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keeper-commander/internal/logger"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// capture returns a JSON logger and a func that counts emitted entries per
// level.
func capture(t *testing.T) (*logger.Logger, func(level string) int) {
	t.Helper()
	var buf bytes.Buffer
	log := logger.NewLogger("test", &buf)

	return log, func(level string) int {
		n := 0
		sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
		for sc.Scan() {
			var entry map[string]any
			require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
			if entry["level"] == level {
				n++
			}
		}
		return n
	}
}

// ── Resolve ───────────────────────────────────────────────────────────────────

// TestResolve_KnownRegions verifies that every supported region name,
// regardless of case, resolves to its host without warnings.
func TestResolve_KnownRegions(t *testing.T) {
	tests := []struct {
		hint     string
		want     Region
		wantHost string
	}{
		{hint: "COM", want: RegionCOM, wantHost: "keepersecurity.com"},
		{hint: "com", want: RegionCOM, wantHost: "keepersecurity.com"},
		{hint: "EU", want: RegionEU, wantHost: "keepersecurity.eu"},
		{hint: "eu", want: RegionEU, wantHost: "keepersecurity.eu"},
		{hint: "Eu", want: RegionEU, wantHost: "keepersecurity.eu"},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			log, count := capture(t)

			r := Resolve(tt.hint, "", nil, log)

			assert.Equal(t, tt.want, r.Region())
			assert.Equal(t, "https://"+tt.wantHost+"/api/rest/", r.BaseURL())
			assert.Zero(t, count("warn"))
		})
	}
}

// TestResolve_UnknownRegion verifies the fallback to the default region with
// exactly one warning.
func TestResolve_UnknownRegion(t *testing.T) {
	for _, hint := range []string{"US", "moon", "keepersecurity.eu"} {
		t.Run(hint, func(t *testing.T) {
			log, count := capture(t)

			r := Resolve(hint, "https://keepersecurity.eu/api/v2/", nil, log)

			assert.Equal(t, DefaultRegion, r.Region())
			assert.Equal(t, 1, count("warn"))
		})
	}
}

func TestResolve_LegacyServerURL(t *testing.T) {
	tests := []struct {
		name      string
		server    string
		want      Region
		wantWarns int
	}{
		{name: "eu host", server: "https://keepersecurity.eu/api/v2/", want: RegionEU},
		{name: "com host", server: "https://keepersecurity.com/api/v2/", want: RegionCOM},
		{name: "upper-case host", server: "https://KeeperSecurity.EU/api/v2/", want: RegionEU},
		{name: "unknown host", server: "https://dev.keepersecurity.com/api/v2/", want: DefaultRegion, wantWarns: 1},
		{name: "host with port", server: "https://keepersecurity.eu:443/", want: DefaultRegion, wantWarns: 1},
		{name: "bare host has no netloc", server: "keepersecurity.eu", want: DefaultRegion, wantWarns: 1},
		{name: "unparsable", server: "://%zz", want: DefaultRegion, wantWarns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, count := capture(t)

			r := Resolve("", tt.server, nil, log)

			assert.Equal(t, tt.want, r.Region())
			assert.Equal(t, tt.wantWarns, count("warn"))
			assert.False(t, r.HasOverride(), "legacy URL only selects a region")
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	log, count := capture(t)

	r := Resolve("", "", []byte{9, 9}, log)

	assert.Equal(t, RegionCOM, r.Region())
	assert.Equal(t, "https://keepersecurity.com/api/rest/", r.BaseURL())
	assert.Equal(t, DefaultServerKeyID, r.ServerKeyID())
	assert.Equal(t, []byte{9, 9}, r.DeviceID())
	assert.Equal(t, DefaultLocale, r.Locale())
	assert.Nil(t, r.TransmissionKey())
	assert.False(t, r.Dirty())
	assert.Zero(t, count("warn"))
}

// ── base URL ──────────────────────────────────────────────────────────────────

func TestResolver_SetRegionRecomputesBaseURL(t *testing.T) {
	r := Resolve("COM", "", nil, logger.Nop())

	r.SetRegion(RegionEU)

	assert.Equal(t, "https://keepersecurity.eu/api/rest/", r.BaseURL())
}

// TestResolver_OverrideSurvivesRegionChange verifies that an explicit base
// URL is not clobbered by a later region change.
func TestResolver_OverrideSurvivesRegionChange(t *testing.T) {
	r := Resolve("COM", "", nil, logger.Nop())

	r.SetBaseURL("https://dev.keepersecurity.com/api/rest/")
	r.SetRegion(RegionEU)

	assert.True(t, r.HasOverride())
	assert.Equal(t, RegionEU, r.Region())
	assert.Equal(t, "https://dev.keepersecurity.com/api/rest/", r.BaseURL())

	r.ClearBaseURLOverride()
	assert.False(t, r.HasOverride())
	assert.Equal(t, "https://keepersecurity.eu/api/rest/", r.BaseURL())
}

func TestURLForHost(t *testing.T) {
	assert.Equal(t, "https://keepersecurity.eu/api/rest/", URLForHost("keepersecurity.eu"))
	assert.Equal(t, "https://localhost:8443/api/rest/", URLForHost("localhost:8443"))
}

// ── dirty tracking ────────────────────────────────────────────────────────────

func TestResolver_Dirty(t *testing.T) {
	t.Run("server key id", func(t *testing.T) {
		r := Resolve("", "", nil, logger.Nop())
		r.SetServerKeyIDAndMarkDirty(7)
		assert.Equal(t, 7, r.ServerKeyID())
		assert.True(t, r.Dirty())
	})

	t.Run("device id", func(t *testing.T) {
		r := Resolve("", "", nil, logger.Nop())
		r.SetDeviceIDAndMarkDirty([]byte("dev"))
		assert.Equal(t, []byte("dev"), r.DeviceID())
		assert.True(t, r.Dirty())
	})

	t.Run("transmission key and reads do not dirty", func(t *testing.T) {
		r := Resolve("EU", "", []byte{1}, logger.Nop())
		r.SetTransmissionKey([]byte("ephemeral"))
		r.SetLocale("de_DE")
		_ = r.DeviceID()
		_ = r.ServerKeyID()
		assert.Equal(t, []byte("ephemeral"), r.TransmissionKey())
		assert.False(t, r.Dirty())
	})

	t.Run("seeded server key id is clean", func(t *testing.T) {
		r := Resolve("", "", nil, logger.Nop()).WithServerKeyID(3)
		assert.Equal(t, 3, r.ServerKeyID())
		assert.False(t, r.Dirty())
	})

	t.Run("non-positive seed keeps default", func(t *testing.T) {
		r := Resolve("", "", nil, logger.Nop()).WithServerKeyID(0)
		assert.Equal(t, DefaultServerKeyID, r.ServerKeyID())
	})

	t.Run("reads never clear", func(t *testing.T) {
		r := Resolve("", "", nil, logger.Nop())
		r.SetServerKeyIDAndMarkDirty(2)
		_ = r.Dirty()
		_ = r.ServerKeyID()
		assert.True(t, r.Dirty())
	})
}

// ── REST client ───────────────────────────────────────────────────────────────

func TestResolver_NewRESTClient(t *testing.T) {
	r := Resolve("EU", "", nil, logger.Nop())

	cli := r.NewRESTClient(5 * time.Second)

	require.NotNil(t, cli)
	assert.Equal(t, "https://keepersecurity.eu/api/rest", cli.BaseURL)
	assert.Equal(t, "en-US", cli.Header.Get("Accept-Language"))
}

func TestResolver_NewRESTClient_FollowsOverride(t *testing.T) {
	r := Resolve("COM", "", nil, logger.Nop())
	r.SetBaseURL("https://qa.keepersecurity.com/api/rest/")

	cli := r.NewRESTClient(0)

	assert.Equal(t, "https://qa.keepersecurity.com/api/rest", cli.BaseURL)
}

func TestRegion_String(t *testing.T) {
	assert.Equal(t, "COM", RegionCOM.String())
	assert.Equal(t, "EU", RegionEU.String())
	assert.Equal(t, "Region(9)", Region(9).String())
	assert.Equal(t, "keepersecurity.com", Region(9).Host())
}
