package cli

import (
	"github.com/spf13/cobra"
)

var (
	saveDirsOnly  bool
	saveFilesOnly bool
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write a scope's snapshot",
	Long: `Load the scope and write it back to its snapshot. On a scope without a
snapshot this records the current directory listing, fixing its ids.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().BoolVar(&saveDirsOnly, "dirs-only", false, "Only record directories when reading the source directory")
	saveCmd.Flags().BoolVar(&saveFilesOnly, "files-only", false, "Only record files when reading the source directory")
	saveCmd.MarkFlagsMutuallyExclusive("dirs-only", "files-only")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	recs, err := sess.load(ctx, saveDirsOnly, saveFilesOnly)
	if err != nil {
		return err
	}
	if err := sess.save(ctx); err != nil {
		return err
	}
	printer.Fprintf(cmd.OutOrStdout(), "Saved %d record(s) to %s\n", len(recs), sess.snapshot)
	return nil
}
