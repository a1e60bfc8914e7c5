package catalog

import "strings"

// ResolveOption resolves a per-identifier override from an ordered list of
// entries. Each entry is either "<key>=<value>" or a bare value with no "=".
// Resolution order, first match wins:
//
//  1. an entry whose key equals target — its value
//  2. the first entry containing no "=" — used verbatim as a generic default
//  3. no value
//
// This models a one-column override table with one optional global default.
func ResolveOption(entries []string, target string) (string, bool) {
	if target != "" {
		for _, entry := range entries {
			key, value, found := strings.Cut(entry, "=")
			if found && key == target {
				return value, true
			}
		}
	}
	for _, entry := range entries {
		if !strings.Contains(entry, "=") {
			return entry, true
		}
	}
	return "", false
}
