package endpoint

import (
	"fmt"
	"strings"
)

// Region selects one of the fixed Keeper hosts.
type Region int

const (
	RegionCOM Region = iota
	RegionEU
)

// DefaultRegion is used whenever a region cannot be determined.
const DefaultRegion = RegionCOM

var regionHosts = map[Region]string{
	RegionCOM: "keepersecurity.com",
	RegionEU:  "keepersecurity.eu",
}

var regionNames = map[Region]string{
	RegionCOM: "COM",
	RegionEU:  "EU",
}

// Regions lists every supported region in table order.
func Regions() []Region {
	return []Region{RegionCOM, RegionEU}
}

// ParseRegion matches a symbolic region name case-insensitively.
func ParseRegion(name string) (Region, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, r := range Regions() {
		if regionNames[r] == name {
			return r, true
		}
	}

	return DefaultRegion, false
}

// RegionForHost returns the region whose host equals host (case-insensitive).
func RegionForHost(host string) (Region, bool) {
	host = strings.ToLower(host)
	for _, r := range Regions() {
		if regionHosts[r] == host {
			return r, true
		}
	}

	return DefaultRegion, false
}

// Host returns the API host name of the region.
func (r Region) Host() string {
	if h, ok := regionHosts[r]; ok {
		return h
	}
	return regionHosts[DefaultRegion]
}

// String returns the symbolic name, e.g. "EU".
func (r Region) String() string {
	if n, ok := regionNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Region(%d)", int(r))
}
