package catalog

import "errors"

// Synthesis errors. Both abort the build for a single artifact only; a batch
// caller logs and moves on to the next artifact.
var (
	// ErrUnreadableArtifact means the artifact source could not be opened
	// or its container could not be read.
	ErrUnreadableArtifact = errors.New("unreadable artifact")

	// ErrMissingManifestData means a mandatory identity field (bundle
	// identifier or display name) is absent from the manifest.
	ErrMissingManifestData = errors.New("missing manifest data")
)
