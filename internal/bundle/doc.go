// Package bundle reads the embedded metadata of an installable artifact:
// its manifest (identity, version, declared capabilities, usage-description
// strings) and zero or more entitlement maps bound to its signing identities.
// The Reader interface is the seam consumers depend on; IPAReader is the
// default implementation for zip-packaged app archives.
package bundle
