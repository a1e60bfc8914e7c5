package bundle

// Manifest is the decoded key-value metadata of an artifact (Info.plist
// shape): values are strings, bools, numbers, or nested lists/maps.
type Manifest map[string]any

// Entitlements is one decoded entitlement map. An artifact may carry several;
// the first in a slice belongs to the primary (active) signing identity.
type Entitlements map[string]any

// Reader extracts the manifest and entitlement maps from an artifact on disk.
type Reader interface {
	Read(path string) (Manifest, []Entitlements, error)
}

// StringValue returns the manifest value for key if it is a string.
func (m Manifest) StringValue(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringSlice returns the manifest value for key as a list of strings,
// skipping non-string elements.
func (m Manifest) StringSlice(key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
