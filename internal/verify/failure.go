package verify

import "github.com/catforge-labs/catforge/internal/catalog"

// FailureType is the closed, externally stable vocabulary of verification
// failures. Dashboards and CI gates match on these strings; never rename or
// repurpose a value.
type FailureType string

const (
	FailMissingChecksum              FailureType = "missing_checksum"
	FailInvalidSize                  FailureType = "invalid_size"
	FailMissingURL                   FailureType = "missing_url"
	FailDownloadFailed               FailureType = "download_failed"
	FailMissingFile                  FailureType = "missing_file"
	FailSizeMismatch                 FailureType = "size_mismatch"
	FailChecksumFailed               FailureType = "checksum_failed"
	FailUsageDescriptionMissing      FailureType = "usage_description_missing"
	FailUsageDescriptionMismatch     FailureType = "usage_description_mismatch"
	FailMissingBackgroundMode        FailureType = "missing_background_mode"
	FailEntitlementsMissing          FailureType = "entitlements_missing"
	FailMissingEntitlementPermission FailureType = "missing_entitlement_permission"
	FailBundleLoadFailed             FailureType = "bundle_load_failed"
)

// Failure is one discrepancy between the catalog item and the artifact.
type Failure struct {
	Type    FailureType `json:"type"`
	Message string      `json:"message"`
}

// Result is the outcome of verifying one catalog item. An absent or empty
// failure list means the item verified.
type Result struct {
	Item     *catalog.Item `json:"app"`
	Failures []Failure     `json:"failures,omitempty"`
}

// Verified reports whether no failures were recorded.
func (r *Result) Verified() bool {
	return len(r.Failures) == 0
}

// Severity tags observer messages.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Observer receives a severity-tagged message the moment each failure is
// detected. It is informational only; the returned Result is authoritative.
type Observer func(Severity, string)
