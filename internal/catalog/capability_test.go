package catalog

import (
	"testing"

	"github.com/catforge-labs/catforge/internal/bundle"
)

func TestExtractPermissions_UsageDescriptions(t *testing.T) {
	m := bundle.Manifest{
		"CFBundleIdentifier":           "com.example.demo",
		"NSCameraUsageDescription":     "Scans documents",
		"NSMicrophoneUsageDescription": "Records voice notes",
		"UsageDescription":             "suffix only, no identifier",
		"NSFaceIDUsageDescription":     42, // non-string values are skipped
	}

	perms := ExtractPermissions(m, nil, DefaultClassification())

	want := []Permission{
		NewUsageDescriptionPermission("NSCamera", "Scans documents"),
		NewUsageDescriptionPermission("NSMicrophone", "Records voice notes"),
	}
	if len(perms) != len(want) {
		t.Fatalf("got %d permissions, want %d: %+v", len(perms), len(want), perms)
	}
	for i := range want {
		if perms[i] != want[i] {
			t.Errorf("perms[%d] = %+v, want %+v", i, perms[i], want[i])
		}
	}
}

func TestExtractPermissions_BackgroundModes(t *testing.T) {
	m := bundle.Manifest{
		"UIBackgroundModes": []any{"audio", "fetch", "audio"},
	}

	perms := ExtractPermissions(m, nil, DefaultClassification())

	if len(perms) != 2 {
		t.Fatalf("got %d permissions, want 2: %+v", len(perms), perms)
	}
	for i, mode := range []string{"audio", "fetch"} {
		if perms[i].Kind != PermissionBackgroundMode || perms[i].ID != mode {
			t.Errorf("perms[%d] = %+v, want background mode %q", i, perms[i], mode)
		}
		if perms[i].Rationale != PlaceholderBackgroundRationale {
			t.Errorf("perms[%d].Rationale = %q, want placeholder", i, perms[i].Rationale)
		}
	}
}

func TestExtractPermissions_Entitlements(t *testing.T) {
	primary := bundle.Entitlements{
		"com.apple.developer.healthkit": true,           // disclosed
		"com.apple.developer.siri":      "maybe",        // non-boolean counts as declared
		"aps-environment":               "production",   // disclosed
		"get-task-allow":                true,           // harmless, exempt
		"keychain-access-groups":        []any{"group"}, // harmless, exempt
		"com.example.custom":            true,           // unclassified, must be disclosed
		"com.apple.developer.homekit":   false,          // strictly false, not declared
	}
	secondary := bundle.Entitlements{
		"com.apple.developer.in-app-payments": true, // only the first map counts
	}

	perms := ExtractPermissions(bundle.Manifest{}, []bundle.Entitlements{primary, secondary}, DefaultClassification())

	wantIDs := []string{
		"aps-environment",
		"com.apple.developer.healthkit",
		"com.apple.developer.siri",
		"com.example.custom",
	}
	if len(perms) != len(wantIDs) {
		t.Fatalf("got %d permissions, want %d: %+v", len(perms), len(wantIDs), perms)
	}
	for i, id := range wantIDs {
		if perms[i].Kind != PermissionEntitlement || perms[i].ID != id {
			t.Errorf("perms[%d] = %+v, want entitlement %q", i, perms[i], id)
		}
	}
}

func TestExtractPermissions_NoEntitlementMaps(t *testing.T) {
	perms := ExtractPermissions(bundle.Manifest{}, nil, DefaultClassification())
	if len(perms) != 0 {
		t.Fatalf("got %d permissions for empty inputs, want 0", len(perms))
	}
}

func TestClassification_RequiresDisclosure(t *testing.T) {
	table := DefaultClassification()

	if table.RequiresDisclosure("get-task-allow") {
		t.Error("get-task-allow is harmless, should not require disclosure")
	}
	if !table.RequiresDisclosure("com.apple.developer.healthkit") {
		t.Error("healthkit should require disclosure")
	}
	if !table.RequiresDisclosure("com.never.seen.before") {
		t.Error("unclassified entitlements default to requiring disclosure")
	}
}

func TestEntitlementDeclared(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"string", "production", true},
		{"number", 3, true},
		{"list", []any{"a"}, true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntitlementDeclared(tt.value); got != tt.want {
				t.Errorf("EntitlementDeclared(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
