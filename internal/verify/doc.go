// Package verify checks that a published catalog item still faithfully and
// completely describes a real artifact. A Verifier re-derives ground truth
// from the fetched artifact — size, content digest, manifest, entitlements —
// and reconciles it against the item's claims. Checks never abort the call:
// every discrepancy is appended to one accumulating failure list and the
// caller always gets a complete Result. A non-empty list is a hard gate for
// publishing, not an error.
package verify
