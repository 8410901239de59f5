// Package version records the targo client version and the store format
// version it supports.
package version

import "github.com/Masterminds/semver/v3"

// Client is the version of this targo build. Overridden at release time
// via -ldflags.
var Client = "0.2.0"

const (
	// StoreVersion is the store format version this build reads and writes.
	StoreVersion uint32 = 1

	// MinClient is the oldest client version able to operate on stores
	// written at StoreVersion.
	minClient = "0.1.0"
)

// ClientVersion returns the running client version as a semantic version.
func ClientVersion() *semver.Version {
	return semver.MustParse(Client)
}

// MinClientVersion returns the minimum client version recorded in newly
// written store metadata.
func MinClientVersion() *semver.Version {
	return semver.MustParse(minClient)
}
