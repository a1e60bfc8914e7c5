package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/catforge-labs/catforge/internal/bundle"
)

// BuildOptions carries the operator-supplied context for one build: the
// original source location of the artifact and the override lists resolved
// per field against the artifact's bundle identifier (see ResolveOption).
type BuildOptions struct {
	// SourceURL is the location the artifact was obtained from; it becomes
	// the download URL when no override matches.
	SourceURL string

	// Existing is a previously published record for the same bundle, if
	// any. Fields already filled in there win over overrides and sentinels.
	Existing *Item

	// Override lists, each entry "<bundle-id>=<value>" or a bare default.
	DownloadURLs        []string
	Subtitles           []string
	DeveloperNames      []string
	Descriptions        []string
	VersionDescriptions []string

	// Raw category strings; values outside the closed enumeration are
	// dropped silently.
	PrimaryCategory   string
	SecondaryCategory string
}

// Builder synthesizes catalog items. All collaborators are explicit: the
// manifest reader, the digest function, and the classification table. The
// zero value is not usable; construct with NewBuilder.
type Builder struct {
	bundles bundle.Reader
	digest  DigestFunc
	table   Classification
}

// NewBuilder returns a Builder. A nil digest falls back to SHA256Hex and a
// nil table to the built-in classification.
func NewBuilder(bundles bundle.Reader, digest DigestFunc, table Classification) *Builder {
	if digest == nil {
		digest = SHA256Hex
	}
	if table == nil {
		table = DefaultClassification()
	}
	return &Builder{bundles: bundles, digest: digest, table: table}
}

// BuildItem derives the canonical catalog record for the artifact at
// artifactPath. It fails with ErrUnreadableArtifact when the artifact cannot
// be opened and ErrMissingManifestData when the manifest lacks the identity
// fields; both abort this one artifact only.
func (b *Builder) BuildItem(artifactPath string, opts BuildOptions) (*Item, error) {
	manifest, ents, err := b.bundles.Read(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableArtifact, artifactPath, err)
	}

	bundleID, ok := manifest.StringValue(keyBundleIdentifier)
	if !ok || bundleID == "" {
		return nil, fmt.Errorf("%w: %s has no %s", ErrMissingManifestData, artifactPath, keyBundleIdentifier)
	}
	name, ok := manifest.StringValue(keyDisplayName)
	if !ok || name == "" {
		name, ok = manifest.StringValue(keyName)
	}
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: %s has no display name", ErrMissingManifestData, artifactPath)
	}

	version, _ := manifest.StringValue(keyShortVersion)

	item := &Item{
		Name:             name,
		BundleIdentifier: bundleID,
		Version:          NormalizeVersion(version),
		ScreenshotURLs:   []string{},
	}

	if u, ok := ResolveOption(opts.DownloadURLs, bundleID); ok {
		item.DownloadURL = u
	} else {
		item.DownloadURL = opts.SourceURL
	}

	item.Subtitle = fillField(existing(opts.Existing, func(i *Item) string { return i.Subtitle }),
		opts.Subtitles, bundleID, PlaceholderSubtitle)
	item.DeveloperName = fillField(existing(opts.Existing, func(i *Item) string { return i.DeveloperName }),
		opts.DeveloperNames, bundleID, PlaceholderDeveloperName)
	item.LocalizedDescription = fillField(existing(opts.Existing, func(i *Item) string { return i.LocalizedDescription }),
		opts.Descriptions, bundleID, PlaceholderDescription)
	item.VersionDescription = fillField(existing(opts.Existing, func(i *Item) string { return i.VersionDescription }),
		opts.VersionDescriptions, bundleID, PlaceholderVersionDescription)

	for _, raw := range []string{opts.PrimaryCategory, opts.SecondaryCategory} {
		if raw == "" {
			continue
		}
		if c, ok := ParseCategory(raw); ok {
			item.Categories = append(item.Categories, c)
		}
	}

	if err := b.fillComputed(item, artifactPath); err != nil {
		return nil, err
	}

	if perms := ExtractPermissions(manifest, ents, b.table); len(perms) > 0 {
		item.Permissions = perms
	}

	return item, nil
}

// fillComputed stats and streams the artifact once to fill size, version
// date, and the content digest.
func (b *Builder) fillComputed(item *Item, artifactPath string) error {
	info, err := os.Stat(artifactPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadableArtifact, artifactPath, err)
	}
	item.Size = info.Size()
	mtime := info.ModTime().UTC().Truncate(time.Second)
	item.VersionDate = &mtime

	f, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadableArtifact, artifactPath, err)
	}
	defer f.Close()

	digest, err := b.digest(f)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadableArtifact, artifactPath, err)
	}
	item.SHA256 = digest
	return nil
}

// fillField picks the first of: an already published value, an override
// match, the field's placeholder sentinel.
func fillField(current string, overrides []string, bundleID, placeholder string) string {
	if current != "" {
		return current
	}
	if v, ok := ResolveOption(overrides, bundleID); ok {
		return v
	}
	return placeholder
}

func existing(item *Item, get func(*Item) string) string {
	if item == nil {
		return ""
	}
	return get(item)
}
