package catalog

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NormalizeVersion canonicalizes a manifest version string: a leading "v" is
// stripped and the rest rendered through semver when it parses. Strings that
// are not semver (marketing versions like "2024.1 beta") pass through
// unchanged — the catalog publishes what the artifact declares.
func NormalizeVersion(version string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "v")
	v, err := semver.NewVersion(trimmed)
	if err != nil {
		return version
	}
	return v.Original()
}
