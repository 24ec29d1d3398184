package cli

import (
	"fmt"
	"os"

	"github.com/agentx-labs/recordx/internal/branding"
	"github.com/agentx-labs/recordx/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags shared by every scope command.
var (
	flagScope    string
	flagSnapshot string
	flagSource   string
	flagStrategy string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` tracks the named entries of a working directory (a scope),
gives each a stable id, and resolves references against them. Records are
persisted to a snapshot file inside the scope between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagScope, "scope", ".", "Scope directory")
	pf.StringVar(&flagSnapshot, "snapshot", "", "Snapshot file (default <scope>/"+branding.SnapshotFile()+")")
	pf.StringVar(&flagSource, "source", "", "Directory listed when no snapshot exists (default <scope>)")
	pf.StringVar(&flagStrategy, "strategy", "", "Id strategy: stable or sequential (default from config)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
