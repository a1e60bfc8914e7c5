// Package catalog synthesizes the canonical, publishable record of one
// installable artifact from its embedded manifest and entitlement maps.
// It defines the published Item shape, the closed permission vocabulary,
// the entitlement classification policy, and the builder that combines
// manifest data, extracted permissions, and operator overrides. Validation
// against the published JSON Schema lives here too.
package catalog
