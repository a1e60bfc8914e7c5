package catalog

import "time"

// Item is the canonical catalog record for one installable artifact.
// BundleIdentifier and Name are the mandatory identity pair; every other
// string field carries either a real value or its placeholder sentinel,
// never an empty string the consumer has to guess about.
type Item struct {
	Name                 string       `json:"name"`
	BundleIdentifier     string       `json:"bundleIdentifier"`
	Version              string       `json:"version"`
	Size                 int64        `json:"size"`
	SHA256               string       `json:"sha256"`
	DownloadURL          string       `json:"downloadURL"`
	Subtitle             string       `json:"subtitle"`
	DeveloperName        string       `json:"developerName"`
	LocalizedDescription string       `json:"localizedDescription"`
	VersionDescription   string       `json:"versionDescription"`
	Categories           []Category   `json:"categories,omitempty"`
	Permissions          []Permission `json:"permissions,omitempty"`
	VersionDate          *time.Time   `json:"versionDate,omitempty"`
	ScreenshotURLs       []string     `json:"screenshotURLs"`
}

// PermissionKind discriminates the closed permission variants.
type PermissionKind string

// Permission variants.
const (
	PermissionUsageDescription PermissionKind = "usage-description"
	PermissionBackgroundMode   PermissionKind = "background-mode"
	PermissionEntitlement      PermissionKind = "entitlement"
)

// Permission is one disclosed capability of an artifact. ID is unique within
// its Kind across one Item's permission list.
type Permission struct {
	Kind      PermissionKind `json:"kind"`
	ID        string         `json:"id"`
	Rationale string         `json:"rationale"`
}

// NewUsageDescriptionPermission returns a usage-description permission for
// the stripped manifest key id, carrying the manifest's justification text.
func NewUsageDescriptionPermission(id, rationale string) Permission {
	return Permission{Kind: PermissionUsageDescription, ID: id, Rationale: rationale}
}

// NewBackgroundModePermission returns a background-mode permission.
func NewBackgroundModePermission(mode, rationale string) Permission {
	return Permission{Kind: PermissionBackgroundMode, ID: mode, Rationale: rationale}
}

// NewEntitlementPermission returns an entitlement permission.
func NewEntitlementPermission(entitlement, rationale string) Permission {
	return Permission{Kind: PermissionEntitlement, ID: entitlement, Rationale: rationale}
}

// Category is one tag from the closed store category enumeration.
type Category string

// Category constants for the categories field.
const (
	CategoryDeveloper     Category = "developer"
	CategoryEntertainment Category = "entertainment"
	CategoryGames         Category = "games"
	CategoryLifestyle     Category = "lifestyle"
	CategoryNews          Category = "news"
	CategoryPhotoVideo    Category = "photo-video"
	CategorySocial        Category = "social"
	CategoryUtilities     Category = "utilities"
)

// ValidCategories contains all valid category values.
var ValidCategories = []Category{
	CategoryDeveloper,
	CategoryEntertainment,
	CategoryGames,
	CategoryLifestyle,
	CategoryNews,
	CategoryPhotoVideo,
	CategorySocial,
	CategoryUtilities,
}

// ParseCategory maps a raw category string to the closed enumeration.
// Unknown values report false and are dropped by the builder.
func ParseCategory(s string) (Category, bool) {
	for _, c := range ValidCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Placeholder sentinels for fields that need manual completion. They
// round-trip through publish and edit exactly as written.
const (
	PlaceholderSubtitle             = "FIXME_SUBTITLE"
	PlaceholderDeveloperName        = "FIXME_DEVELOPER_NAME"
	PlaceholderDescription          = "FIXME_DESCRIPTION"
	PlaceholderVersionDescription   = "FIXME_VERSION_DESCRIPTION"
	PlaceholderBackgroundRationale  = "FIXME_BACKGROUND_MODE_RATIONALE"
	PlaceholderEntitlementRationale = "FIXME_ENTITLEMENT_RATIONALE"
)
