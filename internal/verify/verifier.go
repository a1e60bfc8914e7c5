package verify

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"

	"github.com/catforge-labs/catforge/internal/bundle"
	"github.com/catforge-labs/catforge/internal/catalog"
)

// Verifier re-derives ground truth from an artifact and reconciles it
// against one published catalog item. It holds no mutable state across
// calls; verifications of distinct items may run concurrently on separate
// Verifier values or the same one.
type Verifier struct {
	bundles  bundle.Reader
	digest   catalog.DigestFunc
	accessor Accessor
	table    catalog.Classification
	observe  Observer
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithBundleReader sets the manifest reader used for reconciliation.
func WithBundleReader(r bundle.Reader) Option {
	return func(v *Verifier) { v.bundles = r }
}

// WithDigest sets the content digest function.
func WithDigest(d catalog.DigestFunc) Option {
	return func(v *Verifier) { v.digest = d }
}

// WithAccessor sets the artifact accessor.
func WithAccessor(a Accessor) Option {
	return func(v *Verifier) { v.accessor = a }
}

// WithClassification sets the entitlement classification table.
func WithClassification(t catalog.Classification) Option {
	return func(v *Verifier) { v.table = t }
}

// WithObserver sets the failure observer callback.
func WithObserver(o Observer) Option {
	return func(v *Verifier) { v.observe = o }
}

// New returns a Verifier with default collaborators: the IPA bundle reader,
// streaming SHA-256, the filesystem/HTTP accessor, and the built-in
// classification table.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		bundles:  bundle.NewIPAReader(),
		digest:   catalog.SHA256Hex,
		accessor: NewFileAccessor(),
		table:    catalog.DefaultClassification(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks item against the real artifact behind its download URL.
// baseURL, when non-empty, anchors relative download locations (it is the
// URL of the catalog document the item was published in). Verify always
// returns a complete Result; it never fails as an error.
func (v *Verifier) Verify(ctx context.Context, item *catalog.Item, baseURL string) *Result {
	res := &Result{Item: item}
	fail := func(t FailureType, format string, args ...any) {
		f := Failure{Type: t, Message: fmt.Sprintf(format, args...)}
		res.Failures = append(res.Failures, f)
		if v.observe != nil {
			v.observe(severityFor(t), f.Message)
		}
	}

	// Phase 1: static checks, no I/O.
	if item.SHA256 == "" {
		fail(FailMissingChecksum, "%s: no content digest published", item.BundleIdentifier)
	}
	if item.Size <= 0 {
		fail(FailInvalidSize, "%s: published size %d is not a positive byte count", item.BundleIdentifier, item.Size)
	}

	// Phase 2: location resolution.
	if item.DownloadURL == "" {
		fail(FailMissingURL, "%s: no download location published", item.BundleIdentifier)
		return res
	}
	location := resolveLocation(item.DownloadURL, baseURL)

	// Phase 3: acquisition.
	artifact, err := v.accessor.Open(ctx, location)
	if err != nil {
		fail(FailDownloadFailed, "%s: acquiring %s: %v", item.BundleIdentifier, location, err)
		return res
	}
	defer artifact.Close()

	// Phase 4: content integrity. Length and digest checks run regardless
	// of each other's outcome.
	info, err := os.Stat(artifact.Path)
	if err != nil {
		fail(FailMissingFile, "%s: acquired artifact unreadable: %v", item.BundleIdentifier, err)
		return res
	}
	if item.Size > 0 && info.Size() != item.Size {
		fail(FailSizeMismatch, "%s: published size %d, artifact has %d bytes", item.BundleIdentifier, item.Size, info.Size())
	}
	if item.SHA256 != "" {
		actual, err := v.digestFile(artifact.Path)
		if err != nil {
			fail(FailMissingFile, "%s: acquired artifact unreadable: %v", item.BundleIdentifier, err)
			return res
		}
		if actual != item.SHA256 {
			fail(FailChecksumFailed, "%s: published digest %s, artifact digest %s", item.BundleIdentifier, item.SHA256, actual)
		}
	}

	// Phase 5: capability reconciliation. The artifact is the truth, the
	// item's permission list is the claim.
	manifest, ents, err := v.bundles.Read(artifact.Path)
	if err != nil {
		fail(FailBundleLoadFailed, "%s: reading artifact metadata: %v", item.BundleIdentifier, err)
		return res
	}
	v.reconcilePermissions(item, manifest, ents, fail)

	return res
}

func (v *Verifier) digestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return v.digest(f)
}

// reconcilePermissions cross-checks the artifact's declared capabilities
// against the item's permission list.
func (v *Verifier) reconcilePermissions(item *catalog.Item, manifest bundle.Manifest, ents []bundle.Entitlements, fail func(FailureType, string, ...any)) {
	claimed := map[catalog.PermissionKind]map[string]catalog.Permission{}
	for _, p := range item.Permissions {
		if claimed[p.Kind] == nil {
			claimed[p.Kind] = map[string]catalog.Permission{}
		}
		claimed[p.Kind][p.ID] = p
	}

	usage := catalog.UsageDescriptions(manifest)
	for _, id := range sortedKeys(usage) {
		p, ok := claimed[catalog.PermissionUsageDescription][id]
		if !ok {
			fail(FailUsageDescriptionMissing, "%s: artifact declares usage description %q, item discloses none", item.BundleIdentifier, id)
			continue
		}
		if p.Rationale != usage[id] {
			fail(FailUsageDescriptionMismatch, "%s: usage description %q differs: item says %q, artifact says %q",
				item.BundleIdentifier, id, p.Rationale, usage[id])
		}
	}

	for _, mode := range catalog.BackgroundModes(manifest) {
		if _, ok := claimed[catalog.PermissionBackgroundMode][mode]; !ok {
			fail(FailMissingBackgroundMode, "%s: artifact declares background mode %q, item discloses none", item.BundleIdentifier, mode)
		}
	}

	if len(ents) == 0 {
		fail(FailEntitlementsMissing, "%s: artifact declares no entitlement maps at all", item.BundleIdentifier)
		return
	}
	reported := map[string]bool{}
	for _, ent := range ents {
		for _, key := range sortedKeys(ent) {
			if reported[key] || !catalog.EntitlementDeclared(ent[key]) || !v.table.RequiresDisclosure(key) {
				continue
			}
			if _, ok := claimed[catalog.PermissionEntitlement][key]; !ok {
				reported[key] = true
				fail(FailMissingEntitlementPermission, "%s: artifact declares entitlement %q, item discloses none", item.BundleIdentifier, key)
			}
		}
	}
}

// resolveLocation resolves a scheme-less download location against the
// catalog document's URL, so "app.ipa" next to ".../catalog/index.json"
// becomes ".../catalog/app.ipa".
func resolveLocation(location, baseURL string) string {
	u, err := url.Parse(location)
	if err != nil || u.Scheme != "" || baseURL == "" {
		return location
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return location
	}
	return base.ResolveReference(u).String()
}

// severityFor maps a failure type to its observer severity. A missing
// entitlement map is suspicious rather than conclusive.
func severityFor(t FailureType) Severity {
	if t == FailEntitlementsMissing {
		return SeverityWarning
	}
	return SeverityError
}

func sortedKeys[V any, M ~map[string]V](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
