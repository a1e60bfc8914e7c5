package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"howett.net/plist"
)

// IPAReader reads zip-packaged app archives. The manifest is the Info.plist
// of the top-level Payload/<name>.app directory; entitlement maps come from
// any *.entitlements or *.xcent files inside that directory, ordered with
// the app's own entitlements file first and the rest by name.
type IPAReader struct{}

// NewIPAReader returns a Reader for .ipa archives.
func NewIPAReader() *IPAReader {
	return &IPAReader{}
}

// Read opens the archive and decodes its manifest and entitlement maps.
func (r *IPAReader) Read(archivePath string) (Manifest, []Entitlements, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	appDir, err := findAppDir(zr)
	if err != nil {
		return nil, nil, err
	}

	var manifest Manifest
	var entFiles []*zip.File

	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, appDir) {
			continue
		}
		rel := strings.TrimPrefix(f.Name, appDir)
		switch {
		case rel == "Info.plist":
			manifest = Manifest{}
			if err := decodePlist(f, &manifest); err != nil {
				return nil, nil, fmt.Errorf("decoding manifest in %s: %w", archivePath, err)
			}
		case strings.HasSuffix(rel, ".entitlements") || strings.HasSuffix(rel, ".xcent"):
			entFiles = append(entFiles, f)
		}
	}

	if manifest == nil {
		return nil, nil, fmt.Errorf("archive %s has no manifest at %sInfo.plist", archivePath, appDir)
	}

	sortEntitlementFiles(entFiles, appDir)

	var ents []Entitlements
	for _, f := range entFiles {
		e := Entitlements{}
		if err := decodePlist(f, &e); err != nil {
			return nil, nil, fmt.Errorf("decoding entitlements %s: %w", f.Name, err)
		}
		ents = append(ents, e)
	}

	return manifest, ents, nil
}

// findAppDir locates the single Payload/<name>.app/ directory prefix.
func findAppDir(zr *zip.ReadCloser) (string, error) {
	for _, f := range zr.File {
		parts := strings.SplitN(f.Name, "/", 3)
		if len(parts) >= 2 && parts[0] == "Payload" && strings.HasSuffix(parts[1], ".app") {
			return path.Join(parts[0], parts[1]) + "/", nil
		}
	}
	return "", fmt.Errorf("archive has no Payload/*.app directory")
}

// decodePlist reads one archive entry and unmarshals it as an XML or binary
// property list into out.
func decodePlist(f *zip.File, out any) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Name, err)
	}
	if _, err := plist.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", f.Name, err)
	}
	return nil
}

// sortEntitlementFiles orders entitlement files so the app's own
// "embedded.entitlements" (the active signing identity) sorts first,
// then the rest by name for a stable order.
func sortEntitlementFiles(files []*zip.File, appDir string) {
	sort.Slice(files, func(i, j int) bool {
		pi := strings.TrimPrefix(files[i].Name, appDir) == "embedded.entitlements"
		pj := strings.TrimPrefix(files[j].Name, appDir) == "embedded.entitlements"
		if pi != pj {
			return pi
		}
		return files[i].Name < files[j].Name
	})
}
