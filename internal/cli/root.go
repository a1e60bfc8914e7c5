package cli

import (
	"github.com/catforge-labs/catforge/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "catforge",
	Short: "Synthesize and verify catalog items for installable artifacts",
	Long: `catforge derives a publishable catalog record from an artifact's embedded
manifest and entitlements, and verifies that a published record still
faithfully describes the real artifact: size, content digest, and full
disclosure of every sensitive capability it requests.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
