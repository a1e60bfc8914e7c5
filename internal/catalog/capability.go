package catalog

import (
	"sort"
	"strings"

	"github.com/catforge-labs/catforge/internal/bundle"
)

// Manifest keys read during extraction.
const (
	keyBundleIdentifier    = "CFBundleIdentifier"
	keyDisplayName         = "CFBundleDisplayName"
	keyName                = "CFBundleName"
	keyShortVersion        = "CFBundleShortVersionString"
	keyBackgroundModes     = "UIBackgroundModes"
	usageDescriptionSuffix = "UsageDescription"
)

// UsageDescriptions scans the manifest for keys carrying usage-description
// text and returns stripped identifier → justification string.
func UsageDescriptions(m bundle.Manifest) map[string]string {
	out := map[string]string{}
	for key := range m {
		id, ok := strings.CutSuffix(key, usageDescriptionSuffix)
		if !ok || id == "" {
			continue
		}
		if rationale, ok := m.StringValue(key); ok {
			out[id] = rationale
		}
	}
	return out
}

// BackgroundModes returns the declared background-mode identifiers in
// declared order, without duplicates.
func BackgroundModes(m bundle.Manifest) []string {
	var modes []string
	seen := map[string]bool{}
	for _, mode := range m.StringSlice(keyBackgroundModes) {
		if seen[mode] {
			continue
		}
		seen[mode] = true
		modes = append(modes, mode)
	}
	return modes
}

// ExtractPermissions derives the normalized permission list for an artifact
// from its manifest and entitlement maps. Only the first entitlement map —
// the primary signing identity — contributes entitlement permissions; at
// synthesis time an artifact with no entitlement maps simply yields none.
// The output order is stable: usage descriptions sorted by identifier, then
// background modes in declared order, then entitlements sorted by identifier.
func ExtractPermissions(m bundle.Manifest, ents []bundle.Entitlements, table Classification) []Permission {
	var perms []Permission

	usage := UsageDescriptions(m)
	for _, id := range sortedKeys(usage) {
		perms = append(perms, NewUsageDescriptionPermission(id, usage[id]))
	}

	for _, mode := range BackgroundModes(m) {
		// Pulling disclosure text out of the mode identifier is deferred;
		// the operator replaces the placeholder before publishing.
		perms = append(perms, NewBackgroundModePermission(mode, PlaceholderBackgroundRationale))
	}

	if len(ents) > 0 {
		primary := ents[0]
		for _, key := range sortedKeys(primary) {
			if !EntitlementDeclared(primary[key]) {
				continue
			}
			if !table.RequiresDisclosure(key) {
				continue
			}
			perms = append(perms, NewEntitlementPermission(key, PlaceholderEntitlementRationale))
		}
	}

	return perms
}

func sortedKeys[V any, M ~map[string]V](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
