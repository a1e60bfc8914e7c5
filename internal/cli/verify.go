package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/catforge-labs/catforge/internal/catalog"
	"github.com/catforge-labs/catforge/internal/config"
	"github.com/catforge-labs/catforge/internal/verify"
	"github.com/spf13/cobra"
)

var (
	verifyBaseURL string
	verifyJSON    bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <item.json>",
	Short: "Verify a published catalog item against its artifact",
	Long: `Fetch the artifact behind a published catalog item and check that the item
still describes it: declared size and SHA-256 digest match the bytes, and
every usage description, background mode, and non-harmless entitlement the
artifact declares is disclosed in the item's permission list.

All checks run; every discrepancy is reported. A non-empty failure list
exits with status 1 — treat it as a publish gate, not a crash.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyBaseURL, "base", "", "Catalog document URL for resolving relative download locations")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print the full result as JSON")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading item: %w", err)
	}
	var item catalog.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return fmt.Errorf("parsing item %s: %w", args[0], err)
	}

	baseURL := verifyBaseURL
	if baseURL == "" {
		baseURL = config.Get(config.KeyCatalogBaseURL)
	}

	v := verify.New(verify.WithObserver(func(s verify.Severity, msg string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", s, msg)
	}))
	result := v.Verify(cmd.Context(), &item, baseURL)

	if verifyJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	} else if result.Verified() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s verified\n", item.BundleIdentifier, item.Version)
	} else {
		for _, f := range result.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %s\n", f.Type, f.Message)
		}
	}

	if !result.Verified() {
		return fmt.Errorf("%s: %d verification failure(s)", item.BundleIdentifier, len(result.Failures))
	}
	return nil
}
