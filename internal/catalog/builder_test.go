package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/catforge-labs/catforge/internal/bundle"
)

// fakeReader returns canned bundle metadata regardless of path.
type fakeReader struct {
	manifest bundle.Manifest
	ents     []bundle.Entitlements
	err      error
}

func (f *fakeReader) Read(path string) (bundle.Manifest, []bundle.Entitlements, error) {
	return f.manifest, f.ents, f.err
}

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.ipa")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return path
}

func demoManifest() bundle.Manifest {
	return bundle.Manifest{
		"CFBundleIdentifier":         "com.example.demo",
		"CFBundleDisplayName":        "Demo",
		"CFBundleShortVersionString": "1.2.0",
	}
}

func TestBuildItem_ComputedFields(t *testing.T) {
	content := "artifact bytes"
	path := writeArtifact(t, content)
	b := NewBuilder(&fakeReader{manifest: demoManifest()}, nil, nil)

	item, err := b.BuildItem(path, BuildOptions{SourceURL: "https://example.com/demo.ipa"})
	if err != nil {
		t.Fatalf("BuildItem error: %v", err)
	}

	if item.BundleIdentifier != "com.example.demo" {
		t.Errorf("BundleIdentifier = %q", item.BundleIdentifier)
	}
	if item.Name != "Demo" {
		t.Errorf("Name = %q", item.Name)
	}
	if item.Version != "1.2.0" {
		t.Errorf("Version = %q", item.Version)
	}
	if item.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", item.Size, len(content))
	}
	sum := sha256.Sum256([]byte(content))
	if item.SHA256 != hex.EncodeToString(sum[:]) {
		t.Errorf("SHA256 = %q, want digest of content", item.SHA256)
	}
	if item.DownloadURL != "https://example.com/demo.ipa" {
		t.Errorf("DownloadURL = %q", item.DownloadURL)
	}
	if item.VersionDate == nil {
		t.Error("VersionDate not set")
	}
	if item.ScreenshotURLs == nil || len(item.ScreenshotURLs) != 0 {
		t.Errorf("ScreenshotURLs = %v, want empty non-nil list", item.ScreenshotURLs)
	}
	if item.Permissions != nil {
		t.Errorf("Permissions = %v, want omitted for an artifact declaring nothing", item.Permissions)
	}
}

func TestBuildItem_Placeholders(t *testing.T) {
	path := writeArtifact(t, "x")
	b := NewBuilder(&fakeReader{manifest: demoManifest()}, nil, nil)

	item, err := b.BuildItem(path, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildItem error: %v", err)
	}

	if item.Subtitle != PlaceholderSubtitle {
		t.Errorf("Subtitle = %q, want %q", item.Subtitle, PlaceholderSubtitle)
	}
	if item.DeveloperName != PlaceholderDeveloperName {
		t.Errorf("DeveloperName = %q, want %q", item.DeveloperName, PlaceholderDeveloperName)
	}
	if item.LocalizedDescription != PlaceholderDescription {
		t.Errorf("LocalizedDescription = %q, want %q", item.LocalizedDescription, PlaceholderDescription)
	}
	if item.VersionDescription != PlaceholderVersionDescription {
		t.Errorf("VersionDescription = %q, want %q", item.VersionDescription, PlaceholderVersionDescription)
	}
}

func TestBuildItem_Overrides(t *testing.T) {
	path := writeArtifact(t, "x")
	b := NewBuilder(&fakeReader{manifest: demoManifest()}, nil, nil)

	item, err := b.BuildItem(path, BuildOptions{
		SourceURL:      "https://origin.example.com/demo.ipa",
		DownloadURLs:   []string{"com.other=https://nope", "com.example.demo=https://cdn.example.com/demo.ipa"},
		Subtitles:      []string{"A tiny demo"},
		DeveloperNames: []string{"com.example.demo=Example Corp"},
	})
	if err != nil {
		t.Fatalf("BuildItem error: %v", err)
	}

	if item.DownloadURL != "https://cdn.example.com/demo.ipa" {
		t.Errorf("DownloadURL = %q, want the bundle-id override", item.DownloadURL)
	}
	if item.Subtitle != "A tiny demo" {
		t.Errorf("Subtitle = %q, want the generic override", item.Subtitle)
	}
	if item.DeveloperName != "Example Corp" {
		t.Errorf("DeveloperName = %q", item.DeveloperName)
	}
}

func TestBuildItem_ExistingFieldsWin(t *testing.T) {
	path := writeArtifact(t, "x")
	b := NewBuilder(&fakeReader{manifest: demoManifest()}, nil, nil)

	item, err := b.BuildItem(path, BuildOptions{
		Existing:  &Item{Subtitle: "Published subtitle"},
		Subtitles: []string{"Override subtitle"},
	})
	if err != nil {
		t.Fatalf("BuildItem error: %v", err)
	}
	if item.Subtitle != "Published subtitle" {
		t.Errorf("Subtitle = %q, want the already published value", item.Subtitle)
	}
}

func TestBuildItem_Categories(t *testing.T) {
	path := writeArtifact(t, "x")
	b := NewBuilder(&fakeReader{manifest: demoManifest()}, nil, nil)

	item, err := b.BuildItem(path, BuildOptions{
		PrimaryCategory:   "games",
		SecondaryCategory: "not-a-category", // dropped silently
	})
	if err != nil {
		t.Fatalf("BuildItem error: %v", err)
	}
	if len(item.Categories) != 1 || item.Categories[0] != CategoryGames {
		t.Errorf("Categories = %v, want [games]", item.Categories)
	}
}

func TestBuildItem_PermissionsAttached(t *testing.T) {
	path := writeArtifact(t, "x")
	m := demoManifest()
	m["NSCameraUsageDescription"] = "Scans documents"
	b := NewBuilder(&fakeReader{manifest: m}, nil, nil)

	item, err := b.BuildItem(path, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildItem error: %v", err)
	}
	if len(item.Permissions) != 1 || item.Permissions[0].ID != "NSCamera" {
		t.Errorf("Permissions = %+v, want one camera usage description", item.Permissions)
	}
}

func TestBuildItem_MissingManifestData(t *testing.T) {
	path := writeArtifact(t, "x")

	for _, m := range []bundle.Manifest{
		{},
		{"CFBundleIdentifier": "com.example.demo"},
		{"CFBundleDisplayName": "Demo"},
	} {
		b := NewBuilder(&fakeReader{manifest: m}, nil, nil)
		_, err := b.BuildItem(path, BuildOptions{})
		if !errors.Is(err, ErrMissingManifestData) {
			t.Errorf("manifest %v: err = %v, want ErrMissingManifestData", m, err)
		}
	}
}

func TestBuildItem_NameFallsBackToBundleName(t *testing.T) {
	path := writeArtifact(t, "x")
	b := NewBuilder(&fakeReader{manifest: bundle.Manifest{
		"CFBundleIdentifier": "com.example.demo",
		"CFBundleName":       "demo",
	}}, nil, nil)

	item, err := b.BuildItem(path, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildItem error: %v", err)
	}
	if item.Name != "demo" {
		t.Errorf("Name = %q, want CFBundleName fallback", item.Name)
	}
}

func TestBuildItem_UnreadableArtifact(t *testing.T) {
	b := NewBuilder(&fakeReader{err: errors.New("boom")}, nil, nil)
	_, err := b.BuildItem("missing.ipa", BuildOptions{})
	if !errors.Is(err, ErrUnreadableArtifact) {
		t.Errorf("err = %v, want ErrUnreadableArtifact", err)
	}

	// Reader succeeds but the file itself is gone.
	b = NewBuilder(&fakeReader{manifest: demoManifest()}, nil, nil)
	_, err = b.BuildItem(filepath.Join(t.TempDir(), "gone.ipa"), BuildOptions{})
	if !errors.Is(err, ErrUnreadableArtifact) {
		t.Errorf("err = %v, want ErrUnreadableArtifact", err)
	}
}
