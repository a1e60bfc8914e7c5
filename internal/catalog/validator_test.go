package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func validItemJSON(t *testing.T) []byte {
	t.Helper()
	item := Item{
		Name:             "Demo",
		BundleIdentifier: "com.example.demo",
		Version:          "1.2.0",
		Size:             14,
		SHA256:           strings.Repeat("ab", 32),
		DownloadURL:      "https://example.com/demo.ipa",
		Subtitle:         PlaceholderSubtitle,
		Categories:       []Category{CategoryGames},
		Permissions: []Permission{
			NewUsageDescriptionPermission("NSCamera", "Scans documents"),
		},
		ScreenshotURLs: []string{},
	}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshaling item: %v", err)
	}
	return data
}

func TestValidate_ValidItem(t *testing.T) {
	result, err := Validate(validItemJSON(t))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got issues: %+v", result.Issues)
	}
}

func TestValidate_BadDigest(t *testing.T) {
	data := []byte(strings.Replace(string(validItemJSON(t)), strings.Repeat("ab", 32), "NOT-A-DIGEST", 1))

	result, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid for malformed digest")
	}
	found := false
	for _, issue := range result.Issues {
		if issue.Path == "/sha256" {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue at /sha256: %+v", result.Issues)
	}
}

func TestValidate_MissingIdentity(t *testing.T) {
	result, err := Validate([]byte(`{"version":"1.0.0"}`))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid for missing identity fields")
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	if _, err := Validate([]byte("{")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
