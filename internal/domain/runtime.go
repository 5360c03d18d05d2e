package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// UnknownVersion is displayed for runtime identifiers that carry no version.
const UnknownVersion = "Unknown"

// e.g. "com.apple.CoreSimulator.SimRuntime.iOS-17-0" or "iOS-14-5"
var runtimeVersionRe = regexp.MustCompile(`([A-Za-z]+)-(\d+)-(\d+)$`)

// RuntimeVersion is the OS platform and version encoded in a runtime identifier.
type RuntimeVersion struct {
	Platform string
	Major    int
	Minor    int
	Valid    bool
}

// ParseRuntimeVersion extracts the platform and version from a runtime identifier.
func ParseRuntimeVersion(identifier string) RuntimeVersion {
	m := runtimeVersionRe.FindStringSubmatch(identifier)
	if m == nil {
		return RuntimeVersion{}
	}
	major, err := strconv.Atoi(m[2])
	if err != nil {
		return RuntimeVersion{}
	}
	minor, err := strconv.Atoi(m[3])
	if err != nil {
		return RuntimeVersion{}
	}
	return RuntimeVersion{Platform: m[1], Major: major, Minor: minor, Valid: true}
}

// String renders "iOS 17.0", or "Unknown" when the identifier did not parse.
func (v RuntimeVersion) String() string {
	if !v.Valid {
		return UnknownVersion
	}
	return fmt.Sprintf("%s %d.%d", v.Platform, v.Major, v.Minor)
}

// Newer reports whether v sorts before o in a newest-first listing.
// Unparsed versions always sort last.
func (v RuntimeVersion) Newer(o RuntimeVersion) bool {
	if v.Valid != o.Valid {
		return v.Valid
	}
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor > o.Minor
}
