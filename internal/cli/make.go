package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/catforge-labs/catforge/internal/bundle"
	"github.com/catforge-labs/catforge/internal/catalog"
	"github.com/catforge-labs/catforge/internal/config"
	"github.com/spf13/cobra"
)

var (
	makeOutput              string
	makeSourceURL           string
	makeExisting            string
	makeValidate            bool
	makeDownloadURLs        []string
	makeSubtitles           []string
	makeDevelopers          []string
	makeDescriptions        []string
	makeVersionDescriptions []string
	makePrimaryCategory     string
	makeSecondaryCategory   string
)

var makeCmd = &cobra.Command{
	Use:   "make <artifact>",
	Short: "Synthesize a catalog item from an artifact",
	Long: `Derive the canonical catalog record for one artifact: identity and version
from its manifest, size and SHA-256 digest from its bytes, and a permission
list covering every usage description, background mode, and non-harmless
entitlement it declares. Fields with no value get a FIXME_* placeholder for
manual completion.

Override flags take repeated "<bundle-id>=<value>" entries or one bare value
used as a default for any bundle.`,
	Args: cobra.ExactArgs(1),
	RunE: runMake,
}

func init() {
	makeCmd.Flags().StringVarP(&makeOutput, "output", "o", "", "Write the item JSON to a file instead of stdout")
	makeCmd.Flags().StringVar(&makeSourceURL, "source", "", "Original source location of the artifact")
	makeCmd.Flags().StringVar(&makeExisting, "existing", "", "Previously published item JSON to carry fields over from")
	makeCmd.Flags().BoolVar(&makeValidate, "validate", false, "Validate the result against the item schema")
	makeCmd.Flags().StringArrayVar(&makeDownloadURLs, "download-url", nil, "Download URL override")
	makeCmd.Flags().StringArrayVar(&makeSubtitles, "subtitle", nil, "Subtitle override")
	makeCmd.Flags().StringArrayVar(&makeDevelopers, "developer", nil, "Developer name override")
	makeCmd.Flags().StringArrayVar(&makeDescriptions, "description", nil, "Localized description override")
	makeCmd.Flags().StringArrayVar(&makeVersionDescriptions, "version-description", nil, "Version description override")
	makeCmd.Flags().StringVar(&makePrimaryCategory, "category", "", "Primary category")
	makeCmd.Flags().StringVar(&makeSecondaryCategory, "secondary-category", "", "Secondary category")
	rootCmd.AddCommand(makeCmd)
}

func runMake(cmd *cobra.Command, args []string) error {
	artifactPath := args[0]

	sourceURL := makeSourceURL
	if sourceURL == "" {
		sourceURL = config.Get(config.KeySourceURL)
	}

	var existing *catalog.Item
	if makeExisting != "" {
		data, err := os.ReadFile(makeExisting)
		if err != nil {
			return fmt.Errorf("reading existing item: %w", err)
		}
		existing = &catalog.Item{}
		if err := json.Unmarshal(data, existing); err != nil {
			return fmt.Errorf("parsing existing item %s: %w", makeExisting, err)
		}
	}

	builder := catalog.NewBuilder(bundle.NewIPAReader(), nil, nil)
	item, err := builder.BuildItem(artifactPath, catalog.BuildOptions{
		SourceURL:           sourceURL,
		Existing:            existing,
		DownloadURLs:        makeDownloadURLs,
		Subtitles:           makeSubtitles,
		DeveloperNames:      makeDevelopers,
		Descriptions:        makeDescriptions,
		VersionDescriptions: makeVersionDescriptions,
		PrimaryCategory:     makePrimaryCategory,
		SecondaryCategory:   makeSecondaryCategory,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrMissingManifestData) {
			return fmt.Errorf("artifact is not publishable: %w", err)
		}
		return err
	}

	out, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling item: %w", err)
	}
	out = append(out, '\n')

	if makeValidate {
		result, err := catalog.Validate(out)
		if err != nil {
			return fmt.Errorf("validating item: %w", err)
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "schema: %s: %s\n", issue.Path, issue.Message)
		}
		if !result.Valid {
			return fmt.Errorf("item does not satisfy the catalog schema")
		}
	}

	if makeOutput != "" {
		if err := os.WriteFile(makeOutput, out, 0644); err != nil {
			return fmt.Errorf("writing item to %s: %w", makeOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s %s)\n", makeOutput, item.BundleIdentifier, item.Version)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
