package catalog

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed entitlements.yaml
var rawClassification []byte

// Tag labels the kind of access an entitlement grants. TagHarmless exempts
// the entitlement from requiring a disclosed permission.
type Tag string

const (
	TagHarmless      Tag = "harmless"
	TagUnknown       Tag = "unknown"
	TagContacts      Tag = "contacts"
	TagHardware      Tag = "hardware"
	TagHealth        Tag = "health"
	TagHome          Tag = "home"
	TagLocation      Tag = "location"
	TagNetwork       Tag = "network"
	TagNotifications Tag = "notifications"
	TagPayments      Tag = "payments"
	TagStorage       Tag = "storage"
	TagVoice         Tag = "voice"
)

// Classification is an immutable table mapping an entitlement identifier to
// its category tags. It is loaded once and passed around as a read-only
// dependency; callers never mutate it.
type Classification map[string][]Tag

var (
	classOnce    sync.Once
	defaultTable Classification
)

// DefaultClassification returns the built-in table, parsed from the embedded
// YAML on first use.
func DefaultClassification() Classification {
	classOnce.Do(func() {
		defaultTable = Classification{}
		_ = yaml.Unmarshal(rawClassification, &defaultTable)
	})
	return defaultTable
}

// Tags returns the classification for an entitlement identifier. Identifiers
// missing from the table classify as unknown, which requires disclosure.
func (c Classification) Tags(entitlement string) []Tag {
	if tags, ok := c[entitlement]; ok {
		return tags
	}
	return []Tag{TagUnknown}
}

// RequiresDisclosure reports whether a declared entitlement must appear in
// the catalog item's permission list.
func (c Classification) RequiresDisclosure(entitlement string) bool {
	for _, tag := range c.Tags(entitlement) {
		if tag == TagHarmless {
			return false
		}
	}
	return true
}

// EntitlementDeclared reports whether an entitlement value counts as a
// declared grant. Policy: anything except a strict boolean false is
// declared — string, number, and list values all count. This deliberately
// broadens what requires disclosure; keep the check behind this one name.
func EntitlementDeclared(value any) bool {
	b, ok := value.(bool)
	return !ok || b
}
