package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/agentx-labs/recordx/internal/branding"
	"github.com/agentx-labs/recordx/internal/config"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo describes the binary and the id settings it would run with.
type buildInfo struct {
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	Date         string `json:"date"`
	Go           string `json:"go"`
	Strategy     string `json:"strategy"`
	SnapshotFile string `json:"snapshotFile"`
	ConfigFile   string `json:"configFile"`
}

func currentBuildInfo() buildInfo {
	settings := config.Current()
	if flagStrategy != "" {
		settings.Strategy = flagStrategy
	}
	return buildInfo{
		Version:      buildVersion,
		Commit:       buildCommit,
		Date:         buildDate,
		Go:           runtime.Version(),
		Strategy:     settings.Strategy,
		SnapshotFile: settings.SnapshotFile,
		ConfigFile:   config.FilePath(),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and id settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		info := currentBuildInfo()
		if versionJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s %s (commit %s, built %s)\n", branding.DisplayName(), info.Version, info.Commit, info.Date)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  go:\t%s\n", info.Go)
		fmt.Fprintf(tw, "  id strategy:\t%s\n", info.Strategy)
		fmt.Fprintf(tw, "  snapshot file:\t%s\n", info.SnapshotFile)
		fmt.Fprintf(tw, "  config:\t%s\n", info.ConfigFile)
		return tw.Flush()
	},
}
